package main

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/zsiec/cea608tt/internal/convert"
	"github.com/zsiec/cea608tt/internal/subtitle"
)

func newProbeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe FILE",
		Short: "Decode an SCC caption file and print its cues",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			cues, err := convert.Cues(in, nil)
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(os.Stdout)
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"#", "Start", "End", "Duration", "Text"})
			for _, c := range cues {
				tw.AppendRow(table.Row{
					c.Index,
					subtitle.Timestamp(c.PTS),
					subtitle.Timestamp(c.PTS + c.Duration),
					time.Duration(c.Duration).Round(time.Millisecond),
					c.Text,
				})
			}
			tw.Render()
			return nil
		},
	}
	return cmd
}
