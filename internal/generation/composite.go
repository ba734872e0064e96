package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Section content strategies for composite documents.
const (
	SectionGenerate = "generate"
	SectionText     = "text"
	SectionFile     = "file"
	SectionSkip     = "skip"
)

// Section is one independently-sourced part of a composite document.
type Section struct {
	Title           string `json:"title"`
	ContentType     string `json:"contentType"`
	Content         string `json:"content,omitempty"`
	PagesToGenerate int    `json:"pagesToGenerate,omitempty"`
	File            *File  `json:"file,omitempty"`
}

// Pacer spaces out consecutive backend calls inside one composite request.
// It is injected so the pipeline can be tested without real timers.
type Pacer interface {
	Wait(ctx context.Context) error
}

// PacerFactory produces the Pacer for one composite run. Each run gets its
// own instance; unrelated requests never share pacing state.
type PacerFactory func() Pacer

type limiterPacer struct {
	limiter *rate.Limiter
}

// NewDelayPacer returns a Pacer that lets the first call through immediately
// and spaces every following call at least d apart. Backed by a token-bucket
// limiter with burst 1.
func NewDelayPacer(d time.Duration) Pacer {
	return &limiterPacer{limiter: rate.NewLimiter(rate.Every(d), 1)}
}

// DelayPacerFactory returns a factory producing a fresh delay pacer per call.
func DelayPacerFactory(d time.Duration) PacerFactory {
	return func() Pacer {
		return NewDelayPacer(d)
	}
}

func (p *limiterPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// sectionResult is one produced section, in declared order. Err is set when
// the section's backend call failed; the pipeline stops at the first error.
type sectionResult struct {
	index int
	title string
	text  string
	err   error
}

// runComposite assembles a multi-section document. Every non-skipped section
// contributes a heading plus its content: generated sections call the backend
// under the thesis persona (paced by the injected Pacer), literal sections
// are appended verbatim, and file sections go through the extraction adapter.
// A backend failure on any section aborts the whole document; no partial
// result is returned.
func (s *Service) runComposite(ctx context.Context, p Payload, sections []Section) (*Result, error) {
	topic := p.str("topic")
	field := p.str("field")
	pacer := s.newPacer()

	var doc strings.Builder
	fmt.Fprintf(&doc, "# Дипломная работа\n## Тема: %s\n\n", topic)

	for res := range s.sectionResults(ctx, pacer, topic, field, sections) {
		if res.err != nil {
			return nil, fmt.Errorf("section %d (%q): %w", res.index, res.title, res.err)
		}
		fmt.Fprintf(&doc, "\n\n### %s\n\n", res.title)
		doc.WriteString(res.text)
	}

	text := doc.String()
	m := CalculateMetrics(text)
	return &Result{
		DocType:    DocTypeThesis,
		Text:       text,
		TokenCount: m.TokenCount,
		PageCount:  m.PageCount,
	}, nil
}

// sectionResults yields section results one at a time, in declared order,
// stopping after the first error or when the consumer stops ranging.
func (s *Service) sectionResults(ctx context.Context, pacer Pacer, topic, field string, sections []Section) func(yield func(sectionResult) bool) {
	return func(yield func(sectionResult) bool) {
		for i, section := range sections {
			if section.ContentType == SectionSkip {
				continue
			}

			res := sectionResult{index: i, title: section.Title}
			switch section.ContentType {
			case SectionGenerate:
				res.text, res.err = s.generateSection(ctx, pacer, topic, field, section)
			case SectionText:
				res.text = section.Content
			case SectionFile:
				if section.File != nil {
					res.text = s.builder.extractOrEmpty(*section.File)
				}
			default:
				res.err = fmt.Errorf("%w: unknown section contentType %q", ErrInvalidRequest, section.ContentType)
			}

			if !yield(res) || res.err != nil {
				return
			}
		}
	}
}

// generateSection performs one paced backend call for a generated section.
func (s *Service) generateSection(ctx context.Context, pacer Pacer, topic, field string, section Section) (string, error) {
	if err := pacer.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: pacing interrupted: %v", ErrBackendFailure, err)
	}

	prompt := fmt.Sprintf(
		`Напиши текст для раздела "%s" дипломной работы на тему "%s" в области "%s". Объем примерно %d страниц.`,
		section.Title, topic, field, section.PagesToGenerate)

	raw, err := s.dispatch(ctx, GenerateRequest{
		Contents:          TextContents(prompt),
		SystemInstruction: ThesisInstruction(),
	})
	if err != nil {
		return "", err
	}
	return raw.Text, nil
}
