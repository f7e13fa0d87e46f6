package config

// OutputConfig holds settings related to report formatting.
type OutputConfig struct {
	// JSONFormat enables JSON output instead of text
	JSONFormat bool

	// Colour highlights outcomes and rejections in text output
	Colour bool

	// ShowBoard prints the final position as a diagram
	ShowBoard bool

	// ShowHistory lists every accepted ply in text output
	ShowHistory bool
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		ShowHistory: true,
	}
}
