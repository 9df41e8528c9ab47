package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	previewEnvelope envelopeFlags
	previewRender   previewFlags
	previewOutput   string
)

var previewCmd = &cobra.Command{
	Use:   "preview [route-file]",
	Short: "Render an envelope to a PNG image",
	Long:  "Rasterize the envelope in software with flat shading and translucent walls and floor.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewEnvelope.register(previewCmd)
	previewRender.register(previewCmd)
	previewCmd.Flags().StringVarP(&previewOutput, "output", "o", "", "Output PNG file (default: route file with .png extension)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	result, err := previewEnvelope.generate(cmd, args[0])
	if err != nil {
		return err
	}
	defer result.Close()

	output := outputName(args[0], previewOutput, ".png")
	cam, opts := previewRender.options(result)
	if err := result.Preview(output, cam, opts); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%dx%d)\n", output, opts.Width, opts.Height)
	return nil
}
