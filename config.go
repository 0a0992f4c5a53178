package underwrite

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/propintel/underwrite/pdf"
	"github.com/propintel/underwrite/server"
	"github.com/propintel/underwrite/store"
	"github.com/propintel/underwrite/underwriting"
)

// Config is the complete configuration of the report service
type Config struct {
	// PageSize selects a named page size (letter, a4) and replaces Layout.Page
	PageSize string                        `yaml:"page_size,omitempty"`
	Layout   pdf.Options                   `yaml:"layout"`
	Branding underwriting.AssemblerOptions `yaml:"branding"`
	Server   server.Config                 `yaml:"server"`
	Store    store.Config                  `yaml:"store"`
}

func DefaultConfig() Config {
	return Config{
		Layout: pdf.DefaultOptions(),
		Branding: underwriting.AssemblerOptions{
			Title:   underwriting.DefaultTitle,
			Tagline: underwriting.DefaultTagline,
			Columns: underwriting.DefaultColumns,
		},
		Server: server.DefaultConfig(),
	}
}

// LoadConfig reads a YAML file over DefaultConfig. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Options returns the document options with the named page size applied
func (c Config) Options() (pdf.Options, error) {
	opts := c.Layout
	if c.PageSize != "" {
		size, err := pdf.PageSizeByName(c.PageSize)
		if err != nil {
			return opts, err
		}
		opts.Page = size
	}
	if opts.Info.Title == "" {
		opts.Info.Title = c.Branding.Title
	}
	if opts.Info.Creator == "" {
		opts.Info.Creator = "underwrite"
	}
	return opts, nil
}

func (c Config) Validate() error {
	opts, err := c.Options()
	if err != nil {
		return err
	}
	if _, err := pdf.NewComposer(opts); err != nil {
		return fmt.Errorf("invalid layout: %w", err)
	}
	if len(c.Branding.Columns.Widths) > 0 {
		if err := c.Branding.Columns.Validate(opts.Page.UsableWidth()); err != nil {
			return fmt.Errorf("invalid branding columns: %w", err)
		}
	}
	return nil
}
