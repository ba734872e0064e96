package generation

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// File is an uploaded attachment as it arrives on the wire: base64 content
// plus the client-declared media type. The content is never re-encoded or
// reinterpreted before being handed to the backend.
type File struct {
	Name     string `json:"name"`
	MimeType string `json:"type"`
	Data     string `json:"base64"`
}

// Bytes decodes the base64 content.
func (f File) Bytes() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(f.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %q: %v", ErrInvalidRequest, f.Name, err)
	}
	return b, nil
}

// Source is a grounding citation returned when the backend used web search.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// Result is the normalized outcome of one generation request.
//
// For schema-constrained kinds Structured carries the reconciled object and
// the text/metrics fields are zero; for everything else Structured is nil.
type Result struct {
	DocType    string   `json:"docType,omitempty"`
	Text       string   `json:"text"`
	TokenCount int      `json:"tokenCount"`
	PageCount  float64  `json:"pageCount"`
	Uniqueness int      `json:"uniqueness"`
	Sources    []Source `json:"sources,omitempty"`
	Structured any      `json:"-"`
}

// Payload is the kind-specific request body. Each kind has its own implicit
// field shape, so access goes through the typed helpers below; a missing
// string field reads as "".
type Payload map[string]any

func (p Payload) str(key string) string {
	v, _ := p[key].(string)
	return v
}

func (p Payload) boolean(key string) bool {
	v, _ := p[key].(bool)
	return v
}

// num reads a numeric field. JSON numbers decode as float64, but tests and
// internal callers may supply ints directly.
func (p Payload) num(key string) int {
	switch v := p[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// decode re-marshals a nested payload value into a typed destination.
// Nested objects arrive as map[string]any from the JSON layer, so a
// round-trip through encoding/json is the simplest faithful conversion.
func (p Payload) decode(key string, dst any) error {
	v, ok := p[key]
	if !ok || v == nil {
		return fmt.Errorf("%w: missing field %q", ErrInvalidRequest, key)
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: field %q: %v", ErrInvalidRequest, key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: field %q: %v", ErrInvalidRequest, key, err)
	}
	return nil
}

// files reads the optional attachment list.
func (p Payload) files() []File {
	if _, ok := p["files"]; !ok {
		return nil
	}
	var fs []File
	if err := p.decode("files", &fs); err != nil {
		return nil
	}
	return fs
}

// file reads a single optional attachment under the given key.
func (p Payload) file(key string) *File {
	if _, ok := p[key]; !ok {
		return nil
	}
	var f File
	if err := p.decode(key, &f); err != nil {
		return nil
	}
	if f.Name == "" && f.Data == "" {
		return nil
	}
	return &f
}

// PlanItem is one entry of a structured plan: a titled sub-item with a
// description and a ready-to-use prompt for generating its body later.
type PlanItem struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	GenerationPrompt string `json:"generationPrompt"`
}
