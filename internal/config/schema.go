package config

// Config is the merged todo configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	UI      UIConfig      `yaml:"ui" mapstructure:"ui"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StorageConfig selects the persistent store backend.
type StorageConfig struct {
	// Backend is one of file, sqlite, memory.
	Backend string `yaml:"backend" mapstructure:"backend"`
	// Dir overrides the data directory; empty resolves TODO_DATA_DIR or the OS default.
	Dir string `yaml:"dir" mapstructure:"dir"`
}

type UIConfig struct {
	CenterWidth   int `yaml:"center_width" mapstructure:"center_width"`
	NoticeSeconds int `yaml:"notice_seconds" mapstructure:"notice_seconds"`
}

type LogConfig struct {
	// File is the log destination; empty means <data dir>/todo.log.
	File string `yaml:"file" mapstructure:"file"`
}
