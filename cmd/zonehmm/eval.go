package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/unixpickle/discrete-hmm/classify"
	"github.com/unixpickle/discrete-hmm/corpus"
)

func (a *app) evalCmd() *cobra.Command {
	var dataPath, modelsPath string
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Report classification accuracy on a zoning file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := loadModels(modelsPath)
			if err != nil {
				return err
			}
			f, err := os.Open(dataPath)
			if err != nil {
				return err
			}
			samples, err := corpus.ReadZoning(f)
			f.Close()
			if err != nil {
				return err
			}

			c := classify.New(models)
			c.Logger = a.logger
			report, err := c.Evaluate(cmd.Context(), samples, a.cfg.Parallelism)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, class := range report.SortedClasses() {
				stats := report.Classes[class]
				fmt.Fprintf(out, "%s: %d/%d\n", class, stats.Correct, stats.Total)
			}
			if report.Unscoreable > 0 || report.Malformed > 0 {
				fmt.Fprintf(out, "unscoreable: %d, malformed: %d\n",
					report.Unscoreable, report.Malformed)
			}
			fmt.Fprintf(out, "success rate: %.1f%%\n", 100*report.Accuracy())
			return nil
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "zoning file to evaluate")
	cmd.Flags().StringVar(&modelsPath, "models", "models.json", "trained model set")
	cmd.MarkFlagRequired("data")
	return cmd
}
