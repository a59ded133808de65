package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pklampros/timelab/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string // output file path (single format) or base path (multiple)
	configFile string
	noCache    bool
	opts       pipeline.Options
}

// renderCommand creates the render command: full pipeline from an event file
// to artifacts on disk.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	ro := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Lay out an event file and write SVG/TeX/JSON artifacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ro.opts.Input = args[0]
			if ro.configFile != "" {
				if err := applyConfigFile(ro.configFile, &ro.opts); err != nil {
					return err
				}
			}
			if formatsStr != "" || len(ro.opts.Formats) == 0 {
				ro.opts.Formats = parseFormats(formatsStr)
			}
			return c.runRender(cmd, &ro)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), tex, json (comma-separated)")
	cmd.Flags().StringVar(&ro.configFile, "config", "", "TOML configuration file")
	cmd.Flags().StringVarP(&ro.opts.Direction, "direction", "d", "", "label direction: right (default), left, up, down")
	cmd.Flags().Float64Var(&ro.opts.Width, "width", 0, "canvas width")
	cmd.Flags().Float64Var(&ro.opts.Height, "height", 0, "canvas height")
	cmd.Flags().Float64Var(&ro.opts.LayerGap, "layer-gap", 0, "gap between label layers")
	cmd.Flags().Float64Var(&ro.opts.DotRadius, "dot-radius", 0, "axis dot radius")
	cmd.Flags().StringVar(&ro.opts.DomainFrom, "from", "", "explicit domain start (RFC 3339)")
	cmd.Flags().StringVar(&ro.opts.DomainTo, "to", "", "explicit domain end (RFC 3339)")
	cmd.Flags().StringVar(&ro.opts.DotColor, "dot-color", "", "axis dot color")
	cmd.Flags().StringSliceVar(&ro.opts.DotPalette, "dot-palette", nil, "cyclic dot colors")
	cmd.Flags().StringVar(&ro.opts.LabelBgColor, "label-bg", "", "label background color")
	cmd.Flags().StringVar(&ro.opts.LabelTextColor, "label-text", "", "label text color")
	cmd.Flags().StringVar(&ro.opts.LinkColor, "link-color", "", "connector color")
	cmd.Flags().StringVar(&ro.opts.BorderColor, "border-color", "", "label border color")
	cmd.Flags().BoolVar(&ro.opts.ShowBorder, "border", false, "draw label borders")
	cmd.Flags().BoolVar(&ro.opts.HideTicks, "no-ticks", false, "hide axis tick marks")
	cmd.Flags().BoolVar(&ro.opts.Reproducible, "reproducible", false, "strip volatile metadata from TeX output")
	cmd.Flags().BoolVar(&ro.opts.Refresh, "refresh", false, "bypass the artifact cache")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching entirely")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, ro *renderOpts) error {
	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	p := newProgress(c.Logger)
	result, err := runner.Execute(cmd.Context(), ro.opts)
	if err != nil {
		printError("render failed: %s", err)
		return err
	}
	p.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	if result.Layout.Degraded {
		printWarning("layout could not fully satisfy position bounds")
	}

	printSuccess("Rendered %s", ro.opts.Input)
	printStats(result.Stats.EventCount, result.Stats.LayerCount, result.CacheInfo.RenderHit)

	for _, format := range sortedFormats(result.Artifacts) {
		path := ro.outputPath(format, len(result.Artifacts) > 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// outputPath decides where one artifact lands. With a single format the
// --output flag names the file directly; with several it is a base path the
// format extension is appended to.
func (ro *renderOpts) outputPath(format string, multi bool) string {
	if ro.output != "" {
		if !multi {
			return ro.output
		}
		return ro.output + "." + format
	}
	base := strings.TrimSuffix(filepath.Base(ro.opts.Input), filepath.Ext(ro.opts.Input))
	return base + "." + format
}

func sortedFormats(artifacts map[string][]byte) []string {
	order := []string{pipeline.FormatSVG, pipeline.FormatTeX, pipeline.FormatJSON}
	out := make([]string, 0, len(artifacts))
	for _, f := range order {
		if _, ok := artifacts[f]; ok {
			out = append(out, f)
		}
	}
	return out
}
