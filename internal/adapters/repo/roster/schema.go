package roster

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version" yaml:"version"`
	Accounts []accountSchema `toml:"accounts" yaml:"accounts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported roster schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type accountSchema struct {
	Name string `toml:"name" yaml:"name"`
	UUID string `toml:"uuid,omitempty" yaml:"uuid,omitempty"`
}
