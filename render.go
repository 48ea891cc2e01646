package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/matt-g-everett/ledtx/easing"
)

var renderAt time.Duration

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print every property value at a timeline position",
	RunE: func(cmd *cobra.Command, _ []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		defer w.profile.Dispose()

		if err := w.profile.Seek(renderAt); err != nil {
			return err
		}
		return printValues(cmd.OutOrStdout(), w)
	},
}

var easingsCmd = &cobra.Command{
	Use:   "easings",
	Short: "List the easing functions with their curves",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printEasings(cmd.OutOrStdout(), 24)
	},
}

func init() {
	renderCmd.Flags().DurationVar(&renderAt, "at", 0, "timeline position")
	rootCmd.AddCommand(renderCmd, easingsCmd)
}

func printValues(out io.Writer, w *workspace) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LAYER\tPROPERTY\tVALUE\tKEYFRAMES")
	for _, l := range w.profile.Layers() {
		for _, p := range l.Properties().Properties() {
			if p.IsHidden() {
				continue
			}
			keyframes := "-"
			if p.KeyframesEnabled() {
				keyframes = "on"
			}
			fmt.Fprintf(tw, "%s\t%s\t%v\t%s\n", l.Name(), p.Path(), p.CurrentValueAny(), keyframes)
		}
	}
	return tw.Flush()
}

var levels = []rune("▁▂▃▄▅▆▇█")

// sparkline draws samples in [0, 1] as block characters. Overshooting
// curves are clipped.
func sparkline(samples []float64) string {
	var b strings.Builder
	for _, s := range samples {
		i := int(s * float64(len(levels)-1))
		b.WriteRune(levels[max(0, min(len(levels)-1, i))])
	}
	return b.String()
}

func printEasings(out io.Writer, samples int) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, fn := range easing.Functions() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", int(fn), fn, sparkline(easing.Sample(fn, samples)))
	}
	return tw.Flush()
}
