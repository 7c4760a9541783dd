package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rumorwatch/internal/models"
)

// KeywordDictionary is the structure of the keywords YAML file used to seed
// the keyword store.
type KeywordDictionary struct {
	Keywords []models.KeywordInput `yaml:"keywords"`
}

// LoadKeywordDictionary reads a keyword dictionary from path.
// Returns nil without error if the file doesn't exist.
func LoadKeywordDictionary(path string) (*KeywordDictionary, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Dictionary file is optional
			return nil, nil
		}
		return nil, err
	}

	return ParseKeywordDictionary(data)
}

// ParseKeywordDictionary decodes a keyword dictionary document.
func ParseKeywordDictionary(data []byte) (*KeywordDictionary, error) {
	var dict KeywordDictionary
	if err := yaml.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("parse keyword dictionary: %w", err)
	}
	return &dict, nil
}

// Inputs returns the dictionary entries, or nil for a nil dictionary.
func (d *KeywordDictionary) Inputs() []models.KeywordInput {
	if d == nil {
		return nil
	}
	return d.Keywords
}
