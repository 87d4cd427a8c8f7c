package core

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"maganghub-radar/internal/ai"
	"maganghub-radar/internal/maganghub"
)

// Recommendation is one resume-matched vacancy as returned to the client.
type Recommendation struct {
	Position string  `json:"position"`
	Company  string  `json:"company"`
	Odds     float64 `json:"odds"`
	Reason   string  `json:"reason"`
}

const manifestDescriptionLimit = 300

// Manifest renders the vacancy list as the plain-text inventory sent to the
// model alongside the resume. Records should already be in presentation
// order so the model sees the best odds first.
func Manifest(records []maganghub.Vacancy) string {
	var sb strings.Builder
	for _, r := range records {
		fmt.Fprintf(&sb, "id=%s | position=%s | company=%s | odds=%.2f%% | description=%s\n",
			r.ID, r.Position, r.Company, r.Odds, truncate(r.Description, manifestDescriptionLimit))
	}
	return sb.String()
}

// BuildRecommendations joins the model's picks back onto the current
// records. Picks whose id is not in the dataset are dropped; one
// hallucinated id must not fail the whole request.
func BuildRecommendations(picks []ai.Pick, records []maganghub.Vacancy) []Recommendation {
	byID := make(map[string]maganghub.Vacancy, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	out := make([]Recommendation, 0, len(picks))
	for _, p := range picks {
		record, ok := byID[p.ID]
		if !ok {
			continue
		}
		position := strings.TrimSpace(p.Position)
		if position == "" {
			position = record.Position
		}
		out = append(out, Recommendation{
			Position: position,
			Company:  record.Company,
			Odds:     record.Odds,
			Reason:   p.Reason,
		})
	}
	return out
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
