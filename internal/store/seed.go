package store

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// seedFile mirrors the layout of configs/reactions.yaml
type seedFile struct {
	Reactions []struct {
		Keyword  string `yaml:"keyword"`
		Response string `yaml:"response"`
		Type     string `yaml:"type"`
	} `yaml:"reactions"`
}

// SeedFromFile loads default reactions from a YAML file into the store.
// It is a no-op when the store already holds rules, so restarts against a
// persistent backend never duplicate the defaults
func SeedFromFile(s Store, path string) error {
	existing, err := s.Reactions()
	if err != nil {
		return fmt.Errorf("failed to check existing reactions: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	for _, r := range seed.Reactions {
		if _, err := s.CreateReaction(r.Keyword, r.Response, ReactionType(r.Type)); err != nil {
			// Skip malformed entries instead of aborting the whole seed
			log.Printf("[STORE]: skipping seed reaction %q: %v", r.Keyword, err)
		}
	}

	return nil
}
