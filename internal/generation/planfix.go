package generation

import (
	"encoding/json"
	"fmt"
)

// Plan is the canonical structured-plan response. Exactly one of Chapters or
// Sections is populated, depending on the request kind.
type Plan struct {
	Title    string     `json:"title"`
	Chapters []PlanItem `json:"chapters,omitempty"`
	Sections []PlanItem `json:"sections,omitempty"`
}

// planEnvelope accepts both labels the model is known to use for the item
// list. The schema names one of them, but the model sometimes answers with
// the other; both decode into the same slice shape.
type planEnvelope struct {
	Title    string     `json:"title"`
	Chapters []PlanItem `json:"chapters"`
	Sections []PlanItem `json:"sections"`
}

func (e planEnvelope) items() []PlanItem {
	if len(e.Chapters) > 0 {
		return e.Chapters
	}
	return e.Sections
}

// NormalizeStructured reconciles a schema-constrained model response into the
// shape the caller expects for the given kind. The renaming is a fixed
// per-kind table, not a generic heuristic: book plans expose their item list
// as "chapters", the other plan kinds as "sections", and non-plan structured
// kinds pass through as-is.
func NormalizeStructured(kind Kind, raw string) (any, error) {
	switch kind {
	case KindBookPlan:
		env, err := decodePlan(raw)
		if err != nil {
			return nil, err
		}
		return Plan{Title: env.Title, Chapters: env.items()}, nil

	case KindBusinessPlan, KindArticlePlan, KindGrantPlan:
		env, err := decodePlan(raw)
		if err != nil {
			return nil, err
		}
		return Plan{Title: env.Title, Sections: env.items()}, nil

	default:
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("%w: parsing structured response: %v", ErrBackendFailure, err)
		}
		return v, nil
	}
}

func decodePlan(raw string) (planEnvelope, error) {
	var env planEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return planEnvelope{}, fmt.Errorf("%w: parsing plan response: %v", ErrBackendFailure, err)
	}
	return env, nil
}
