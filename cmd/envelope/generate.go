package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/philipparndt/envelope/pkg/stl"
	"github.com/spf13/cobra"
)

var (
	generateFlags  envelopeFlags
	generateOutput string
	generateASCII  bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [route-file]",
	Short: "Generate an envelope and export it as STL",
	Long:  "Assemble the envelope of a route file and write its top, wall and floor meshes into one STL file.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateFlags.register(generateCmd)
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output STL file (default: route file with .stl extension)")
	generateCmd.Flags().BoolVar(&generateASCII, "ascii", false, "Write ASCII STL instead of binary")
}

func outputName(input, output, ext string) string {
	if output != "" {
		return output
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + ext
}

func stlFormat(cmd *cobra.Command) stl.Format {
	ascii := cfg.Envelope.ASCII
	if cmd.Flags().Changed("ascii") {
		ascii = generateASCII
	}
	if ascii {
		return stl.ASCII
	}
	return stl.Binary
}

func runGenerate(cmd *cobra.Command, args []string) error {
	result, err := generateFlags.generate(cmd, args[0])
	if err != nil {
		return err
	}
	defer result.Close()

	output := outputName(args[0], generateOutput, ".stl")
	if err := result.Export(output, stlFormat(cmd)); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d triangles)\n", output, result.Model().TriangleCount())
	return nil
}
