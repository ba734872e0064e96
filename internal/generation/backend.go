package generation

import (
	"context"

	"google.golang.org/genai"
)

// GenerateRequest is one fully-specified call to the generation backend.
// Contents carries the conversation or prompt parts in model order;
// SystemInstruction is the resolved persona text.
type GenerateRequest struct {
	Contents          []*genai.Content
	SystemInstruction string
	ResponseSchema    *genai.Schema
	EnableSearch      bool
}

// RawResult is the backend's normalized output: the text (which is the JSON
// payload when a schema was requested) plus any grounding citations.
type RawResult struct {
	Text    string
	Sources []Source
}

// Backend is the external generation capability. Implementations send
// exactly one request per call and do not retry; any failure propagates to
// the caller.
type Backend interface {
	Generate(ctx context.Context, req GenerateRequest) (*RawResult, error)
}

// TextContents wraps a plain prompt as user content.
func TextContents(prompt string) []*genai.Content {
	return []*genai.Content{
		{Role: string(genai.RoleUser), Parts: []*genai.Part{genai.NewPartFromText(prompt)}},
	}
}

// PartsContents wraps pre-built parts (prompt text plus attachments) as one
// user content entry.
func PartsContents(parts []*genai.Part) []*genai.Content {
	return []*genai.Content{{Role: string(genai.RoleUser), Parts: parts}}
}
