package suggest

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"abctrack/internal/domain/models"
)

//go:embed data/fallback.yaml
var fallbackFiles embed.FS

// fallbackTables holds the static suggestion lists served when the remote
// call fails. Content data, shipped as an embedded YAML asset.
type fallbackTables struct {
	Behaviors []fallbackEntry     `yaml:"behaviors"`
	Generic   fallbackSuggestions `yaml:"generic"`
}

type fallbackEntry struct {
	Match               string `yaml:"match"`
	fallbackSuggestions `yaml:",inline"`
}

type fallbackSuggestions struct {
	Antecedents  []models.SuggestionItem `yaml:"antecedents"`
	Consequences []models.SuggestionItem `yaml:"consequences"`
}

// loadFallbackTables parses the embedded fallback data.
func loadFallbackTables() (*fallbackTables, error) {
	data, err := fallbackFiles.ReadFile("data/fallback.yaml")
	if err != nil {
		return nil, fmt.Errorf("read fallback.yaml: %w", err)
	}
	var tables fallbackTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("unmarshal fallback.yaml: %w", err)
	}
	return &tables, nil
}

// lookup returns the suggestion lists for a normalized behavior label:
// the first entry whose match word is a substring of the label, else the
// generic lists.
func (t *fallbackTables) lookup(label string) models.SuggestionSet {
	for _, entry := range t.Behaviors {
		if strings.Contains(label, entry.Match) {
			return models.SuggestionSet{
				Antecedents:  entry.Antecedents,
				Consequences: entry.Consequences,
			}
		}
	}
	return models.SuggestionSet{
		Antecedents:  t.Generic.Antecedents,
		Consequences: t.Generic.Consequences,
	}
}
