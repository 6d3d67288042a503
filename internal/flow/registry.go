// Package flow holds the static data tables that drive the questionnaire:
// the flow definitions the client renders step by step, and the behavior
// tables used to classify a completed pass as positive or negative. Both are
// content data shipped as embedded YAML, not code.
package flow

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"abctrack/internal/domain/models"
)

//go:embed data/*.yaml
var dataFiles embed.FS

// Option is one selectable answer choice in a step.
type Option struct {
	Label string `yaml:"label" json:"label"`
	Emoji string `yaml:"emoji" json:"emoji"`
}

// Step is one question of a flow. The primary step's answer drives sentiment
// classification.
type Step struct {
	ID           string   `yaml:"id" json:"id"`
	Question     string   `yaml:"question" json:"question"`
	Primary      bool     `yaml:"primary" json:"primary,omitempty"`
	MultiSelect  bool     `yaml:"multi_select" json:"multi_select"`
	AllowsCustom bool     `yaml:"allows_custom" json:"allows_custom"`
	Options      []Option `yaml:"options" json:"options"`
}

// Flow is one questionnaire definition.
type Flow struct {
	Name  string `yaml:"name" json:"name"`
	Title string `yaml:"title" json:"title"`
	Steps []Step `yaml:"steps" json:"steps"`
}

// PrimaryStep returns the step whose answer classifies the log, or nil.
func (f *Flow) PrimaryStep() *Step {
	for i := range f.Steps {
		if f.Steps[i].Primary {
			return &f.Steps[i]
		}
	}
	return nil
}

// Registry holds the parsed flow definitions and sentiment tables.
type Registry struct {
	flows    map[string]*Flow
	positive []string
	negative []string
}

type flowsFile struct {
	Flows []Flow `yaml:"flows"`
}

type sentimentFile struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// NewRegistry parses the embedded YAML data files.
func NewRegistry() (*Registry, error) {
	r := &Registry{flows: make(map[string]*Flow)}

	data, err := dataFiles.ReadFile("data/flows.yaml")
	if err != nil {
		return nil, fmt.Errorf("read flows.yaml: %w", err)
	}
	var ff flowsFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("unmarshal flows.yaml: %w", err)
	}
	for i := range ff.Flows {
		f := ff.Flows[i]
		r.flows[f.Name] = &f
	}

	data, err = dataFiles.ReadFile("data/sentiment.yaml")
	if err != nil {
		return nil, fmt.Errorf("read sentiment.yaml: %w", err)
	}
	var sf sentimentFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("unmarshal sentiment.yaml: %w", err)
	}
	r.positive = normalizeAll(sf.Positive)
	r.negative = normalizeAll(sf.Negative)

	return r, nil
}

// Get returns the flow definition with the given name.
func (r *Registry) Get(name string) (*Flow, bool) {
	f, ok := r.flows[name]
	return f, ok
}

// Names returns the defined flow names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.flows))
	for name := range r.flows {
		names = append(names, name)
	}
	return names
}

// Classify maps the primary behavior answer to a sentiment partition.
// Exact membership wins over substring match; unknown behaviors land in the
// negative partition, matching the skew of the behavior tables.
func (r *Registry) Classify(behaviorAnswer string) models.Sentiment {
	label := normalize(behaviorAnswer)

	for _, p := range r.positive {
		if label == p {
			return models.SentimentPositive
		}
	}
	for _, n := range r.negative {
		if label == n {
			return models.SentimentNegative
		}
	}
	for _, p := range r.positive {
		if strings.Contains(label, p) {
			return models.SentimentPositive
		}
	}
	return models.SentimentNegative
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = normalize(s)
	}
	return out
}
