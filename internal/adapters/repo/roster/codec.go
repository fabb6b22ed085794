package roster

import (
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type codec struct {
	name      string
	marshal   func(v any) ([]byte, error)
	unmarshal func(data []byte, v any) error
}

var (
	tomlCodec = codec{name: "toml", marshal: toml.Marshal, unmarshal: toml.Unmarshal}
	yamlCodec = codec{name: "yaml", marshal: yaml.Marshal, unmarshal: yaml.Unmarshal}
)

// codecForPath picks YAML for .yaml/.yml files and TOML for everything else.
func codecForPath(path string) codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yamlCodec
	default:
		return tomlCodec
	}
}
