package maganghub

import (
	"encoding/json"
	"strings"

	"golang.org/x/net/html"
)

const notAvailable = "N/A"

// titleEntry is one element of the JSON-encoded list MagangHub uses for
// education levels and study programs.
type titleEntry struct {
	Title string `json:"title"`
}

// normalizeTitles flattens a string-or-JSON-array field into a single
// comma-joined string. Malformed JSON falls back to the raw value; empty
// input falls back to "N/A". Upstream sends these fields as strings that
// sometimes contain serialized arrays, so parse failure is expected and
// never an error.
func normalizeTitles(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return notAvailable
	}

	if !strings.HasPrefix(raw, "[") {
		return raw
	}

	var entries []titleEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return raw
	}

	titles := make([]string, 0, len(entries))
	for _, e := range entries {
		if t := strings.TrimSpace(e.Title); t != "" {
			titles = append(titles, t)
		}
	}
	if len(titles) == 0 {
		return notAvailable
	}
	return strings.Join(titles, ", ")
}

// stripHTML flattens markup-laden descriptions into plain text. Parse
// failures return the input unchanged.
func stripHTML(content string) string {
	if !strings.ContainsRune(content, '<') {
		return strings.Join(strings.Fields(content), " ")
	}

	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return content
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(strings.Fields(sb.String()), " ")
}

// orNA substitutes "N/A" for empty strings.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}
