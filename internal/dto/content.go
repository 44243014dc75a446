// Package dto holds the on-disk shapes of catalog content before it becomes domain values.
// The same entry is read from a YAML catalog file or from the front matter of a markdown
// document.
package dto

// CatalogFile is the root of a YAML content catalog.
type CatalogFile struct {
	Content []CatalogEntry `yaml:"content"`
}

// CatalogEntry is one unit of content. Exactly one of Local or Hruid identifies it.
// Question holds the raw question document of multiple-choice and open questions;
// its layout differs between authoring tools, so it is decoded separately.
type CatalogEntry struct {
	Local    string         `yaml:"local,omitempty" json:"local,omitempty" mapstructure:"local"`
	Hruid    string         `yaml:"hruid,omitempty" json:"hruid,omitempty" mapstructure:"hruid"`
	Language string         `yaml:"language" json:"language" mapstructure:"language"`
	Version  int            `yaml:"version,omitempty" json:"version,omitempty" mapstructure:"version"`
	Title    string         `yaml:"title" json:"title" mapstructure:"title"`
	Kind     string         `yaml:"kind" json:"kind" mapstructure:"kind"`
	Question map[string]any `yaml:"question,omitempty" json:"question,omitempty" mapstructure:"question"`
}

// QuestionPayload is the decoded question document.
// Answers is the legacy layout (a list of {text, correct}); Options wins when both are set.
type QuestionPayload struct {
	Prompt  string           `mapstructure:"prompt"`
	Options []string         `mapstructure:"options"`
	Answers []QuestionAnswer `mapstructure:"answers"`
}

type QuestionAnswer struct {
	Text    string `mapstructure:"text"`
	Correct bool   `mapstructure:"correct"`
}

// Labels returns the answer options in order.
func (q QuestionPayload) Labels() []string {
	if len(q.Options) > 0 {
		return q.Options
	}
	labels := make([]string, 0, len(q.Answers))
	for _, a := range q.Answers {
		labels = append(labels, a.Text)
	}
	return labels
}
