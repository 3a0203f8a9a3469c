package toml

import "fmt"

const currentSchemaVersion = 1

type sessionSchema struct {
	Version int               `toml:"version"`
	Entries map[string]string `toml:"entries"`
}

func (s *sessionSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
	if s.Entries == nil {
		s.Entries = map[string]string{}
	}
}

func (s sessionSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}
