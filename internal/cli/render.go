package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/npillmayer/sketch/canvas"
	"github.com/npillmayer/sketch/scene"
)

// Output formats, by file extension.
const (
	formatPNG = ".png"
	formatSVG = ".svg"
)

type renderOpts struct {
	output string
	seed   uint64
	width  int
	height int
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <scene.toml>",
		Short: "Render a scene to PNG or SVG",
		Long: `Render draws every mark of a scene file and writes the result.
The output format follows the extension of --output (.png or .svg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: scene name with .png)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed, overrides the scene's seed")
	cmd.Flags().IntVar(&opts.width, "width", 0, "canvas width in pixels, overrides the scene's width")
	cmd.Flags().IntVar(&opts.height, "height", 0, "canvas height in pixels, overrides the scene's height")

	return cmd
}

func runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := scene.Load(input)
	if err != nil {
		return err
	}
	if opts.seed != 0 {
		s.Seed = opts.seed
	}
	if opts.width > 0 {
		s.Width = opts.width
	}
	if opts.height > 0 {
		s.Height = opts.height
	}
	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + formatPNG
	}
	format := strings.ToLower(filepath.Ext(output))
	if format != formatPNG && format != formatSVG {
		return fmt.Errorf("unsupported output format %q (use .png or .svg)", format)
	}
	view, err := s.View()
	if err != nil {
		return err
	}
	logger.Debug("Viewport", "min", view.Min, "max", view.Max, "size", fmt.Sprintf("%d×%d", view.Width, view.Height))
	if err := ctx.Err(); err != nil {
		return err
	}

	if format == formatSVG {
		err = writeSVG(ctx, s, view, output)
	} else {
		err = writePNG(ctx, s, view, output)
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d marks to %s", len(s.Marks), output))
	return nil
}

func writePNG(ctx context.Context, s *scene.Scene, view canvas.Viewport, output string) error {
	r := canvas.NewRaster(view, s.BackgroundColor())
	if err := s.Draw(r, s.Rand()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeFile(output, func(w *bufio.Writer) error {
		return r.WritePNG(w)
	})
}

func writeSVG(ctx context.Context, s *scene.Scene, view canvas.Viewport, output string) error {
	return writeFile(output, func(w *bufio.Writer) error {
		sv := canvas.NewSVG(w, view, s.BackgroundColor())
		if err := s.Draw(sv, s.Rand()); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		loggerFromContext(ctx).Debug("SVG written", "lines", sv.Lines())
		return sv.Close()
	})
}

// writeFile creates path and hands a buffered writer to write. The file is
// removed if write fails.
func writeFile(path string, write func(w *bufio.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	w := bufio.NewWriter(f)
	if err = write(w); err != nil {
		return err
	}
	return w.Flush()
}

func newBoundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bounds <scene.toml>",
		Short: "Validate a scene and print the bounding box of its marks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.Load(args[0])
			if err != nil {
				return err
			}
			ll, ur := s.Bounds()
			loggerFromContext(cmd.Context()).Debug("Scene loaded", "marks", len(s.Marks))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ll, ur)
			return nil
		},
	}
}
