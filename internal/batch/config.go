package batch

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Config is the on-disk slug list. Keeping the list in a file instead
// of compiling it into the tool lets the same binary retarget another
// applications tree.
type Config struct {
	Apps []string `yaml:"apps"`
}

// LoadConfig reads a YAML apps file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read apps file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse apps file: %w", err)
	}
	if len(cfg.Apps) == 0 {
		return nil, fmt.Errorf("apps file %s lists no applications", path)
	}
	return &cfg, nil
}
