package cli

import (
	"github.com/BurntSushi/toml"

	"github.com/pklampros/timelab/pkg/errors"
	"github.com/pklampros/timelab/pkg/pipeline"
)

// fileConfig is the TOML configuration file schema. Every field is optional;
// set fields override built-in defaults and are in turn overridden by
// command-line flags.
//
// Example:
//
//	direction = "down"
//	width = 800
//	height = 300
//	formats = ["svg", "tex"]
//
//	[style]
//	dot_palette = ["#1b9e77", "#d95f02", "#7570b3"]
//	label_bg_color = "#333"
//	show_border = true
//
//	[domain]
//	from = "2024-01-01T00:00:00Z"
//	to = "2024-12-31T00:00:00Z"
//
//	[latex]
//	reproducible = true
type fileConfig struct {
	Direction string   `toml:"direction"`
	Width     float64  `toml:"width"`
	Height    float64  `toml:"height"`
	LayerGap  float64  `toml:"layer_gap"`
	DotRadius float64  `toml:"dot_radius"`
	Formats   []string `toml:"formats"`

	Domain struct {
		From string `toml:"from"`
		To   string `toml:"to"`
	} `toml:"domain"`

	Style struct {
		DotColor       string   `toml:"dot_color"`
		DotPalette     []string `toml:"dot_palette"`
		LabelBgColor   string   `toml:"label_bg_color"`
		LabelBgPalette []string `toml:"label_bg_palette"`
		LabelTextColor string   `toml:"label_text_color"`
		LinkColor      string   `toml:"link_color"`
		BorderColor    string   `toml:"border_color"`
		HideTicks      bool     `toml:"hide_ticks"`
		ShowBorder     bool     `toml:"show_border"`
	} `toml:"style"`

	Latex struct {
		Reproducible bool `toml:"reproducible"`
	} `toml:"latex"`
}

// applyConfigFile merges a TOML configuration file into opts. Only fields
// present in the file are applied, so flag values set afterwards still win.
func applyConfigFile(path string, opts *pipeline.Options) error {
	var cfg fileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "config file %s", path)
	}

	if cfg.Direction != "" {
		opts.Direction = cfg.Direction
	}
	if cfg.Width != 0 {
		opts.Width = cfg.Width
	}
	if cfg.Height != 0 {
		opts.Height = cfg.Height
	}
	if cfg.LayerGap != 0 {
		opts.LayerGap = cfg.LayerGap
	}
	if cfg.DotRadius != 0 {
		opts.DotRadius = cfg.DotRadius
	}
	if len(cfg.Formats) > 0 {
		opts.Formats = cfg.Formats
	}
	if cfg.Domain.From != "" {
		opts.DomainFrom = cfg.Domain.From
	}
	if cfg.Domain.To != "" {
		opts.DomainTo = cfg.Domain.To
	}

	s := cfg.Style
	if s.DotColor != "" {
		opts.DotColor = s.DotColor
	}
	if len(s.DotPalette) > 0 {
		opts.DotPalette = s.DotPalette
	}
	if s.LabelBgColor != "" {
		opts.LabelBgColor = s.LabelBgColor
	}
	if len(s.LabelBgPalette) > 0 {
		opts.LabelBgPalette = s.LabelBgPalette
	}
	if s.LabelTextColor != "" {
		opts.LabelTextColor = s.LabelTextColor
	}
	if s.LinkColor != "" {
		opts.LinkColor = s.LinkColor
	}
	if s.BorderColor != "" {
		opts.BorderColor = s.BorderColor
	}
	if s.HideTicks {
		opts.HideTicks = true
	}
	if s.ShowBorder {
		opts.ShowBorder = true
	}
	if cfg.Latex.Reproducible {
		opts.Reproducible = true
	}
	return nil
}
