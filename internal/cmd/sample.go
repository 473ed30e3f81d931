package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample X Y",
	Short: "Print the field value at a pixel coordinate",
	Long: `Sample evaluates the configured field once at (X, Y) and prints the raw
height, the shaded value and the pixel color.

Coordinates are in pixels and may be fractional.`,
	Args: cobra.ExactArgs(2),
	RunE: runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid x coordinate %q: %w", args[0], err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid y coordinate %q: %w", args[1], err)
	}

	fc, err := fieldConfig()
	if err != nil {
		return err
	}
	src, err := fc.Build()
	if err != nil {
		return err
	}

	h := src.Height(x, y)
	v := src.Evaluate(x, y)
	c := src.Pixel(x, y)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "height=%g value=%g rgba=(%d,%d,%d,%d)\n", h, v, c.R, c.G, c.B, c.A)
	return err
}
