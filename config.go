package creatorwire

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/creatorwire/creatorwire/internal/logging"
)

// Config captures everything the content pipeline needs to run.
type Config struct {
	// ContentDir holds the flat content files, one subdirectory per type.
	ContentDir string `json:"content_dir"`
	// OutputDir receives the generated static site.
	OutputDir string `json:"output_dir"`
	// DSN is the SQLite connection string.
	DSN string `json:"dsn"`
	// SiteName appears in page titles and the site header.
	SiteName string `json:"site_name"`
	// BaseURL prefixes internal links; empty renders relative links.
	BaseURL string `json:"base_url"`
	// MaxContentLength caps body content in characters; zero keeps the default.
	MaxContentLength int `json:"max_content_length,omitempty"`

	Logging logging.Config `json:"logging"`
}

// DefaultConfig returns a Config suitable for local use.
func DefaultConfig() Config {
	return Config{
		ContentDir: "content",
		OutputDir:  "public",
		DSN:        "file:creatorwire.db",
		SiteName:   "CreatorWire",
		Logging: logging.Config{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the required settings.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ContentDir, validation.Required, validation.By(nonBlank("content_dir"))),
		validation.Field(&c.OutputDir, validation.Required, validation.By(nonBlank("output_dir"))),
		validation.Field(&c.DSN, validation.Required, validation.By(nonBlank("dsn"))),
		validation.Field(&c.MaxContentLength, validation.Min(0)),
	)
}

func nonBlank(name string) func(value any) error {
	return func(value any) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return validation.NewError("config."+name+"_required", name+" is required")
		}
		return nil
	}
}
