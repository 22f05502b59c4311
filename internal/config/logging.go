package config

// LoggingConfig controls the zap logger setup.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is json or console.
	Format string `yaml:"format"`
	// Development enables caller info and colored console output.
	Development bool `yaml:"development"`
}
