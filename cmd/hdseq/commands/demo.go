package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Amansingh-afk/hdseq/internal/dataset"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Classify the built-in dataset against itself",
		Args:  cobra.NoArgs,
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			ds := dataset.Demo()
			m, err := a.newModel(0)
			if err != nil {
				return err
			}
			if err := m.Train(cmd.Context(), ds.Sequences, ds.Labels); err != nil {
				return err
			}
			rep, err := m.Evaluate(cmd.Context(), ds.Sequences, ds.Labels)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, seq := range ds.Sequences {
				fmt.Fprintf(out, "Sequence %v is classified as %d\n", seq, rep.Predictions[i])
			}
			fmt.Fprintf(out, "Classification accuracy: %s\n", formatAccuracy(rep.Accuracy))
			return nil
		}),
	}
}

// formatAccuracy prints the shortest decimal that round-trips, keeping at
// least one fractional digit: 1 -> "1.0", 0.75 -> "0.75".
func formatAccuracy(acc float64) string {
	s := strconv.FormatFloat(acc, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
