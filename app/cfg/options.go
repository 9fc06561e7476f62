package cfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/feedsift/feedsift/app/document"
)

type fileOptions struct {
	DecodeEntityTitleHosts []string `yaml:"decode_entity_title_hosts"`
}

// LoadOptions reads parse options from a YAML file. An empty path returns
// the defaults.
func LoadOptions(path string) (document.Options, error) {
	if path == "" {
		return document.DefaultOptions(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return document.Options{}, fmt.Errorf("failed to read options file: %w", err)
	}

	var raw fileOptions
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return document.Options{}, fmt.Errorf("failed to parse options file %s: %w", path, err)
	}

	opts := document.DefaultOptions()
	if raw.DecodeEntityTitleHosts != nil {
		opts.DecodeEntityTitleHosts = raw.DecodeEntityTitleHosts
	}
	return opts, nil
}
