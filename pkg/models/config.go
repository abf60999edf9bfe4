package models

// BoardSettings holds the board section of .taskboard.yaml.
type BoardSettings struct {
	Variant  Variant `yaml:"variant" mapstructure:"variant"`
	SeedDemo bool    `yaml:"seed_demo" mapstructure:"seed_demo"`
}

// LogSettings controls the console logger.
type LogSettings struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file,omitempty" mapstructure:"file"`
}

// EventSettings controls the JSONL event journal.
type EventSettings struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// BoardConfig holds all settings read from .taskboard.yaml via Viper.
type BoardConfig struct {
	Board  BoardSettings `yaml:"board" mapstructure:"board"`
	Log    LogSettings   `yaml:"log" mapstructure:"log"`
	Events EventSettings `yaml:"events" mapstructure:"events"`
}
