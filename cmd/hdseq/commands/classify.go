package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Amansingh-afk/hdseq/internal/dataset"
)

func newClassifyCmd(a *app) *cobra.Command {
	var trainPath, testPath string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Train on one dataset file and classify another",
		Long: `Train on the labeled sequences in --train, then predict every sequence
in --test (default: the training file) and report accuracy against its labels.
Files are YAML or JSON; see the dataset package for the layout.`,
		Args: cobra.NoArgs,
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			train, err := dataset.Load(trainPath)
			if err != nil {
				return err
			}
			test := train
			if testPath != "" {
				if test, err = dataset.Load(testPath); err != nil {
					return err
				}
			}

			// Size the value table to the data unless the user chose it.
			symbols := 0
			if !cmd.Flags().Changed("symbols") && !a.v.InConfig("symbols") {
				symbols = max(train.Symbols(), test.Symbols(), a.settings().Symbols)
			}
			m, err := a.newModel(symbols)
			if err != nil {
				return err
			}
			if err := m.Train(cmd.Context(), train.Sequences, train.Labels); err != nil {
				return err
			}
			rep, err := m.Evaluate(cmd.Context(), test.Sequences, test.Labels)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, seq := range test.Sequences {
				fmt.Fprintf(out, "%v\tpredicted=%d\tactual=%d\n", seq, rep.Predictions[i], test.Labels[i])
			}
			fmt.Fprintf(out, "Classification accuracy: %.4f (%d sequences)\n", rep.Accuracy, test.Len())
			return nil
		}),
	}
	cmd.Flags().StringVar(&trainPath, "train", "", "Training dataset file (YAML or JSON)")
	cmd.Flags().StringVar(&testPath, "test", "", "Test dataset file (default: the training file)")
	_ = cmd.MarkFlagRequired("train")
	return cmd
}
