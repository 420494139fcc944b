package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the project config file looked up in the working
// directory when STYLEGUIDE_CONFIG_PATH is not set.
const DefaultConfigFile = ".styleguide.yaml"

// ConfigPathEnv overrides the project config file location.
const ConfigPathEnv = "STYLEGUIDE_CONFIG_PATH"

// ProjectConfig is the on-disk project configuration. Every field is a
// default that command-line flags override.
type ProjectConfig struct {
	Format   string `yaml:"format,omitempty"`
	Quiet    bool   `yaml:"quiet,omitempty"`
	Color    string `yaml:"color,omitempty"`
	Registry string `yaml:"registry,omitempty"`
}

// ConfigPath returns the project config file location.
func ConfigPath() string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}
	return DefaultConfigFile
}

// LoadProjectConfig reads the project config file at path.
// A missing file is not an error and yields a nil config.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg ProjectConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if _, err := ParseColorMode(cfg.Color); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Templates are the starting points offered by the init command.
var Templates = map[string]ProjectConfig{
	"minimal":  {Format: "text"},
	"standard": {Format: "text", Color: "auto", Registry: "linters.yaml"},
	"strict":   {Format: "sarif", Quiet: true, Color: "never", Registry: "linters.yaml"},
}

// TemplateNames returns the template names in sorted order.
func TemplateNames() []string {
	names := make([]string, 0, len(Templates))
	for name := range Templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrConfigExists is returned by WriteProjectConfig when the file exists and
// overwriting was not requested.
var ErrConfigExists = errors.New("config file already exists")

// WriteProjectConfig writes the named template to path.
func WriteProjectConfig(path, template string, force bool) error {
	cfg, ok := Templates[template]
	if !ok {
		return fmt.Errorf("unknown template %q (available: %v)", template, TemplateNames())
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w (use --force to overwrite)", path, ErrConfigExists)
		}
	}

	body, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	header := fmt.Sprintf("# styleguide configuration (template: %s)\n", template)
	if err := os.WriteFile(path, append([]byte(header), body...), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
