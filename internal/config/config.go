package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/slideforge/slideforge-backend/internal/media"
	"github.com/slideforge/slideforge-backend/internal/platform/envutil"
	"github.com/slideforge/slideforge-backend/internal/platform/logger"
)

// RenderConfig holds the deck-wide rendering defaults. Values come from the
// built-in defaults, optionally overridden by a yaml file pointed to by
// DECK_CONFIG_PATH.
type RenderConfig struct {
	DPI                 int            `yaml:"dpi"`
	DefaultTemplate     string         `yaml:"default_template"`
	DefaultImageMode    string         `yaml:"default_image_mode"`
	ImageBox            media.Box      `yaml:"image_box"`
	Templates           map[string]int `yaml:"templates"`
	MaxConcurrentImages int            `yaml:"max_concurrent_images"`
}

// Default returns the built-in rendering defaults. The template map ties the
// model-facing template tags to container layout indexes.
func Default() RenderConfig {
	return RenderConfig{
		DPI:              media.DefaultDPI,
		DefaultTemplate:  "title_content",
		DefaultImageMode: media.ModeFill,
		ImageBox:         media.DefaultImageBox,
		Templates: map[string]int{
			"title":           0,
			"title_content":   1,
			"bullet_list":     1,
			"two_column":      3,
			"image_fullbleed": 6,
			"qa":              1,
		},
		MaxConcurrentImages: 4,
	}
}

// Load reads a yaml overrides file on top of the defaults. Unset fields keep
// their default values.
func Load(path string) (RenderConfig, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read deck config: %w", err)
	}
	var overrides RenderConfig
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return cfg, fmt.Errorf("parse deck config: %w", err)
	}
	cfg.merge(overrides)
	return cfg, nil
}

// FromEnv loads the config file named by DECK_CONFIG_PATH, falling back to
// the defaults (with a warning) when the file is missing or malformed.
func FromEnv(log *logger.Logger) RenderConfig {
	path := strings.TrimSpace(os.Getenv("DECK_CONFIG_PATH"))
	if path == "" {
		cfg := Default()
		cfg.MaxConcurrentImages = envutil.Int("DECK_MAX_CONCURRENT_IMAGES", cfg.MaxConcurrentImages)
		return cfg
	}
	cfg, err := Load(path)
	if err != nil {
		log.Warn("deck config load failed, using defaults", "path", path, "error", err)
	}
	cfg.MaxConcurrentImages = envutil.Int("DECK_MAX_CONCURRENT_IMAGES", cfg.MaxConcurrentImages)
	return cfg
}

func (c *RenderConfig) merge(o RenderConfig) {
	if o.DPI > 0 {
		c.DPI = o.DPI
	}
	if o.DefaultTemplate != "" {
		c.DefaultTemplate = o.DefaultTemplate
	}
	if o.DefaultImageMode != "" {
		c.DefaultImageMode = o.DefaultImageMode
	}
	if o.ImageBox.W > 0 && o.ImageBox.H > 0 {
		c.ImageBox = o.ImageBox
	}
	if len(o.Templates) > 0 {
		for tag, layout := range o.Templates {
			c.Templates[tag] = layout
		}
	}
	if o.MaxConcurrentImages > 0 {
		c.MaxConcurrentImages = o.MaxConcurrentImages
	}
}

// LayoutFor maps a template tag to its container layout index, defaulting to
// the title_content layout for unknown tags.
func (c RenderConfig) LayoutFor(template string) int {
	if layout, ok := c.Templates[template]; ok {
		return layout
	}
	return 1
}
