package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	hmm "github.com/unixpickle/discrete-hmm"
)

func (a *app) generateCmd() *cobra.Command {
	var modelsPath, class string
	var length int
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Sample a symbol sequence from a class model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadClassModel(modelsPath, class)
			if err != nil {
				return err
			}
			if length <= 0 {
				length = a.cfg.Zones * a.cfg.Zones
			}
			_, obs, err := m.SampleLen(a.random(), length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), joinObs(obs))
			return nil
		},
	}
	cmd.Flags().StringVar(&modelsPath, "models", "models.json", "trained model set")
	cmd.Flags().StringVar(&class, "class", "", "class to sample from")
	cmd.Flags().IntVarP(&length, "length", "n", 0, "sequence length (default zones*zones)")
	cmd.MarkFlagRequired("class")
	return cmd
}

func (a *app) decodeCmd() *cobra.Command {
	var modelsPath, class string
	cmd := &cobra.Command{
		Use:   "decode [symbol...]",
		Short: "Print the most likely state path for a symbol sequence",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadClassModel(modelsPath, class)
			if err != nil {
				return err
			}
			obs := make([]hmm.Obs, len(args))
			for i, arg := range args {
				symbol, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("bad symbol %q", arg)
				}
				obs[i] = symbol
			}
			path, prob, err := hmm.Viterbi(m, obs)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if path == nil {
				fmt.Fprintln(out, "no state path can produce the sequence")
				return nil
			}
			fmt.Fprintln(out, joinObs(path))
			fmt.Fprintf(out, "probability: %g\n", prob)
			return nil
		},
	}
	cmd.Flags().StringVar(&modelsPath, "models", "models.json", "trained model set")
	cmd.Flags().StringVar(&class, "class", "", "class model to decode with")
	cmd.MarkFlagRequired("class")
	return cmd
}

func joinObs[T any](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, " ")
}
