package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/philipparndt/envelope/pkg/watcher"
	"github.com/spf13/cobra"
)

var (
	watchEnvelope envelopeFlags
	watchRender   previewFlags
	watchOutput   string
	watchPNG      string
)

var watchCmd = &cobra.Command{
	Use:   "watch [route-file]",
	Short: "Regenerate the STL (and optionally a PNG) whenever the route file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchEnvelope.register(watchCmd)
	watchRender.register(watchCmd)
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Output STL file (default: route file with .stl extension)")
	watchCmd.Flags().StringVar(&watchPNG, "png", "", "Also render a preview to this PNG file")
}

func runWatch(cmd *cobra.Command, args []string) error {
	source := args[0]
	output := outputName(source, watchOutput, ".stl")

	var mu sync.Mutex
	rebuild := func() error {
		mu.Lock()
		defer mu.Unlock()

		result, err := watchEnvelope.generate(cmd, source)
		if err != nil {
			return err
		}
		defer result.Close()

		if err := result.Export(output, stlFormat(cmd)); err != nil {
			return err
		}
		if watchPNG != "" {
			cam, opts := watchRender.options(result)
			if err := result.Preview(watchPNG, cam, opts); err != nil {
				return err
			}
		}
		fmt.Printf("Wrote %s (%d triangles)\n", output, result.Model().TriangleCount())
		return nil
	}

	if err := rebuild(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce, slog.Default())
	if err != nil {
		return err
	}
	defer fw.Close()

	err = fw.Watch([]string{source}, func(changed string) {
		fmt.Printf("File changed: %s\n", changed)
		// A broken edit keeps the last good output.
		if err := rebuild(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	})
	if err != nil {
		return err
	}
	fw.Start(ctx)

	fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", source)
	<-ctx.Done()
	return nil
}
