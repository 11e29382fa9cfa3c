package main

import (
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"
	hmm "github.com/unixpickle/discrete-hmm"
	"github.com/unixpickle/discrete-hmm/corpus"
	"github.com/unixpickle/discrete-hmm/hmmio"
)

func (a *app) trainCmd() *cobra.Command {
	var dataPath, outPath string
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train one model per class from a zoning file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(dataPath)
			if err != nil {
				return err
			}
			samples, err := corpus.ReadZoning(f)
			f.Close()
			if err != nil {
				return err
			}
			groups := corpus.Group(samples)
			classes := make([]string, 0, len(groups))
			for class := range groups {
				classes = append(classes, class)
			}
			sort.Strings(classes)

			gen := a.random()
			models := map[string]*hmm.Model{}
			for _, class := range classes {
				start, err := a.cfg.NewModel(gen)
				if err != nil {
					return err
				}
				trainCfg := a.cfg.TrainConfig()
				trainCfg.Logger = a.logger.With(slog.String("class", class))
				trained, err := hmm.Train(start, groups[class], trainCfg)
				if err != nil {
					return err
				}
				models[class] = trained
				a.logger.Info("trained model",
					slog.String("class", class),
					slog.Int("sequences", len(groups[class])),
				)
			}

			out, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := hmmio.SaveSet(out, models); err != nil {
				out.Close()
				return err
			}
			return out.Close()
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "zoning file to train on")
	cmd.Flags().StringVar(&outPath, "out", "models.json", "output model set")
	cmd.MarkFlagRequired("data")
	return cmd
}
