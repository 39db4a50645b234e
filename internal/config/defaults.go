package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: "file",
		},
		UI: UIConfig{
			CenterWidth:   100,
			NoticeSeconds: 3,
		},
	}
}

// WriteDefault writes the default configuration to path, creating parent dirs.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	content := "# todo configuration\n" + string(data)
	return os.WriteFile(path, []byte(content), 0o644)
}
