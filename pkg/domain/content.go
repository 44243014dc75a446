package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ContentKind describes what a referenced unit of content is.
type ContentKind string

const (
	// ContentKindLearningObject is ordinary reading/exercise material (linear step).
	ContentKindLearningObject ContentKind = "learning_object"
	// ContentKindMultipleChoice is a multiple-choice question. Nodes referencing it are decision nodes.
	ContentKindMultipleChoice ContentKind = "multiple_choice"
	// ContentKindOpenQuestion is a free-text question. It does not branch.
	ContentKindOpenQuestion ContentKind = "open_question"
)

// LocalContent is content owned by the authoring teacher.
type LocalContent struct {
	ID string `json:"id" yaml:"id"`
}

// ExternalContent is content from the shared catalog, addressed by a stable triple.
type ExternalContent struct {
	Handle   string `json:"hruid" yaml:"hruid"`
	Language string `json:"language" yaml:"language"`
	Version  int    `json:"version" yaml:"version"`
}

// ContentRef is an immutable pointer to a unit of learning content.
// Exactly one of Local or External is populated.
type ContentRef struct {
	Local    *LocalContent    `json:"local,omitempty" yaml:"local,omitempty"`
	External *ExternalContent `json:"external,omitempty" yaml:"external,omitempty"`
}

// LocalRef builds a reference to teacher-owned content.
func LocalRef(id string) ContentRef {
	return ContentRef{Local: &LocalContent{ID: id}}
}

// ExternalRef builds a reference to catalog content.
func ExternalRef(handle, language string, version int) ContentRef {
	return ContentRef{External: &ExternalContent{Handle: handle, Language: language, Version: version}}
}

var errContentRefVariant = errors.New("content reference must have exactly one of local or external")

// Validate checks that exactly one variant is populated and non-empty.
func (r ContentRef) Validate() error {
	switch {
	case r.Local != nil && r.External != nil, r.Local == nil && r.External == nil:
		return errContentRefVariant
	case r.Local != nil:
		if r.Local.ID == "" {
			return fmt.Errorf("local content reference: empty id")
		}
	default:
		if r.External.Handle == "" || r.External.Language == "" {
			return fmt.Errorf("external content reference: handle and language are required")
		}
	}
	return nil
}

// String renders the reference for logs and map keys.
func (r ContentRef) String() string {
	switch {
	case r.Local != nil:
		return "local:" + r.Local.ID
	case r.External != nil:
		return fmt.Sprintf("external:%s/%s@%d", r.External.Handle, r.External.Language, r.External.Version)
	}
	return "invalid"
}

// ContentSummary is what the content catalog returns for a reference.
// Options is only populated for multiple-choice content.
type ContentSummary struct {
	Ref        ContentRef  `json:"ref"`
	Title      string      `json:"title"`
	Language   string      `json:"language"`
	Kind       ContentKind `json:"kind"`
	PromptText string      `json:"prompt_text,omitempty"`
	Options    []string    `json:"options,omitempty"`
}

// IsDecision reports whether nodes referencing this content branch per answer option.
func (s ContentSummary) IsDecision() bool {
	return s.Kind == ContentKindMultipleChoice
}

// ContentFilter narrows a catalog search. Empty fields match everything.
type ContentFilter struct {
	Query    string      `json:"q,omitempty"`
	Kind     ContentKind `json:"kind,omitempty"`
	Language string      `json:"language,omitempty"`
}

// Matches reports whether s satisfies every populated field of the filter.
// Query is a case-insensitive substring match on the title.
func (f ContentFilter) Matches(s ContentSummary) bool {
	if f.Kind != "" && s.Kind != f.Kind {
		return false
	}
	if f.Language != "" && !strings.EqualFold(s.Language, f.Language) {
		return false
	}
	return f.Query == "" || strings.Contains(strings.ToLower(s.Title), strings.ToLower(f.Query))
}
