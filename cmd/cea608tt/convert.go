package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zsiec/cea608tt/internal/convert"
	"github.com/zsiec/cea608tt/internal/subtitle"
)

func newConvertCommand() *cobra.Command {
	var formatName string
	var outDir string
	cmd := &cobra.Command{
		Use:   "convert FILE...",
		Short: "Convert SCC caption files to subtitle files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := subtitle.ParseFormat(formatName)
			if err != nil {
				return err
			}

			g, _ := errgroup.WithContext(cmd.Context())
			g.SetLimit(runtime.GOMAXPROCS(0))
			for _, path := range args {
				g.Go(func() error {
					return convertFile(path, format, outDir)
				})
			}
			return g.Wait()
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "vtt", "output format: vtt, srt, or text")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: alongside input)")
	return cmd
}

func convertFile(path string, format subtitle.Format, outDir string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + "." + format.Extension()
	if outDir != "" {
		outPath = filepath.Join(outDir, filepath.Base(outPath))
	}
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	log := slog.With("input", path)
	if err := convert.File(in, out, format, log); err != nil {
		out.Close()
		return fmt.Errorf("convert %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	log.Info("converted", "output", outPath)
	return nil
}
