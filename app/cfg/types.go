package cfg

type Cfg struct {
	// Input configuration
	Input string
	URL   string

	// Behavior
	Mode        string
	OptionsFile string

	// Application metadata
	Debug   bool
	Version string
}
