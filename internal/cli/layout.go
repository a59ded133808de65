package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pklampros/timelab/pkg/pipeline"
	"github.com/pklampros/timelab/pkg/render/sink"
)

// layoutCommand creates the layout command: resolve geometry and export it
// as JSON without producing drawable artifacts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		configFile string
		opts       pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Print or export the resolved label geometry as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			if configFile != "" {
				if err := applyConfigFile(configFile, &opts); err != nil {
					return err
				}
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			opts.Logger = c.Logger

			runner := pipeline.NewRunner(nil, nil, c.Logger)
			evs, err := runner.Parse(cmd.Context(), opts)
			if err != nil {
				return err
			}
			tl, layout, err := runner.ComputeLayout(evs, opts)
			if err != nil {
				return err
			}
			if layout.Degraded {
				printWarning("layout could not fully satisfy position bounds")
			}

			data, err := sink.RenderJSON(tl, layout)
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Println(string(data))
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Exported layout")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to a file instead of stdout")
	cmd.Flags().StringVar(&configFile, "config", "", "TOML configuration file")
	cmd.Flags().StringVarP(&opts.Direction, "direction", "d", "", "label direction: right (default), left, up, down")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "canvas height")
	cmd.Flags().Float64Var(&opts.LayerGap, "layer-gap", 0, "gap between label layers")

	return cmd
}
