package dto

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/SELab-2/Dwengo-4-sub000/pkg/domain"
)

// ToSummary turns a catalog entry into the summary the catalog serves.
func ToSummary(entry CatalogEntry) (domain.ContentSummary, error) {
	var ref domain.ContentRef
	switch {
	case entry.Local != "" && entry.Hruid != "":
		return domain.ContentSummary{}, fmt.Errorf("both local and hruid set")
	case entry.Local != "":
		ref = domain.LocalRef(entry.Local)
	default:
		ref = domain.ExternalRef(entry.Hruid, entry.Language, max(entry.Version, 1))
	}
	if err := ref.Validate(); err != nil {
		return domain.ContentSummary{}, err
	}

	s := domain.ContentSummary{
		Ref:      ref,
		Title:    strings.TrimSpace(entry.Title),
		Language: entry.Language,
		Kind:     domain.ContentKind(entry.Kind),
	}
	switch s.Kind {
	case "":
		s.Kind = domain.ContentKindLearningObject
	case domain.ContentKindLearningObject, domain.ContentKindMultipleChoice, domain.ContentKindOpenQuestion:
	default:
		return domain.ContentSummary{}, fmt.Errorf("%s: unknown kind %q", ref, entry.Kind)
	}

	if entry.Question != nil {
		q, err := DecodeQuestion(entry.Question)
		if err != nil {
			return domain.ContentSummary{}, fmt.Errorf("%s: invalid question: %w", ref, err)
		}
		s.PromptText = q.Prompt
		if s.IsDecision() {
			s.Options = q.Labels()
		}
	}
	if s.IsDecision() && len(s.Options) == 0 {
		return domain.ContentSummary{}, fmt.Errorf("%s: multiple-choice content needs answer options", ref)
	}
	return s, nil
}

// DecodeQuestion reads a raw question document. Scalars are converted loosely, so
// "true" and true are both accepted for Correct.
func DecodeQuestion(raw map[string]any) (QuestionPayload, error) {
	var q QuestionPayload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &q,
	})
	if err != nil {
		return q, err
	}
	err = decoder.Decode(raw)
	return q, err
}
