// Package questionnaire loads self-audit answer files. The file is a
// YAML list so the question order the user answered in survives into
// the generated prompt.
package questionnaire

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Answer is one answered question.
type Answer struct {
	Question string   `yaml:"question"`
	Selected []string `yaml:"selected"`
	// Other holds the free-text value backing an "Others" selection.
	Other string `yaml:"other,omitempty"`
}

// Questionnaire is a completed self-audit answer set.
type Questionnaire struct {
	UserType string   `yaml:"user_type"`
	Answers  []Answer `yaml:"answers"`
}

// Load reads and parses an answers file.
func Load(path string) (*Questionnaire, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var q Questionnaire
	if err := yaml.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}
	return &q, nil
}

// Order returns the question texts in answered order.
func (q *Questionnaire) Order() []string {
	order := make([]string, 0, len(q.Answers))
	for _, a := range q.Answers {
		order = append(order, a.Question)
	}
	return order
}

// Responses returns the question → selected-options map consumed by
// the scoring core.
func (q *Questionnaire) Responses() map[string][]string {
	responses := make(map[string][]string, len(q.Answers))
	for _, a := range q.Answers {
		responses[a.Question] = a.Selected
	}
	return responses
}

// Others returns the question → free-text map for "Others" selections.
func (q *Questionnaire) Others() map[string]string {
	others := make(map[string]string)
	for _, a := range q.Answers {
		if a.Other != "" {
			others[a.Question] = a.Other
		}
	}
	return others
}
