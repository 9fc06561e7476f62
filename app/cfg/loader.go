package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	Input       string `long:"input" short:"i" env:"FEEDSIFT_INPUT" description:"Path to the feed document (defaults to stdin)"`
	URL         string `long:"url" short:"u" env:"FEEDSIFT_URL" description:"Source URL of the document, used for error reporting and relative link resolution"`
	Mode        string `long:"mode" short:"m" env:"FEEDSIFT_MODE" default:"parse" choice:"parse" choice:"preparse" choice:"detect" description:"What to do with the document"`
	OptionsFile string `long:"options" env:"FEEDSIFT_OPTIONS" description:"YAML file with parse options (entity-decoded title hosts)"`
	Debug       bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Input:       raw.Input,
		URL:         raw.URL,
		Mode:        raw.Mode,
		OptionsFile: raw.OptionsFile,
		Debug:       raw.Debug,
		Version:     GetVersion(),
	}

	return cfg, nil
}
