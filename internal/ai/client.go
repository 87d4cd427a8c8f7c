package ai

import (
	"context"
	"errors"
)

// Typed failures so callers can tell "AI disabled" from "AI call broke".
var (
	// ErrDisabled means no API key was configured; AI features are off.
	ErrDisabled = errors.New("ai client is not configured")
	// ErrMalformedResponse means the model answered but not in the shape
	// we asked for.
	ErrMalformedResponse = errors.New("malformed ai response")
)

// ClassifyItem is the per-record payload sent to the classifier.
type ClassifyItem struct {
	ID          string
	Position    string
	Description string
}

// Pick is one vacancy the model selected for an uploaded resume.
type Pick struct {
	ID       string `json:"id"`
	Position string `json:"position"`
	Reason   string `json:"reason"`
}

// Client is the generative-AI surface the rest of the system depends on.
type Client interface {
	// Enabled reports whether AI-backed features are available.
	Enabled() bool
	// Classify labels each item IT-RELATED or NON-IT, keyed by id. A
	// failed call returns an empty map alongside the error; callers are
	// expected to degrade, not abort.
	Classify(ctx context.Context, items []ClassifyItem) (map[string]string, error)
	// Recommend uploads the resume at pdfPath and asks the model to pick
	// the best-matching vacancies from the manifest.
	Recommend(ctx context.Context, pdfPath, manifest string) ([]Pick, error)
}

// disabledClient is the no-op fallback used when GEMINI_API_KEY is absent.
// Classification quietly yields nothing; recommendation reports ErrDisabled.
type disabledClient struct{}

func NewDisabledClient() Client {
	return disabledClient{}
}

func (disabledClient) Enabled() bool { return false }

func (disabledClient) Classify(context.Context, []ClassifyItem) (map[string]string, error) {
	return map[string]string{}, nil
}

func (disabledClient) Recommend(context.Context, string, string) ([]Pick, error) {
	return nil, ErrDisabled
}
