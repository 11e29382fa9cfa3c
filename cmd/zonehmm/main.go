// Command zonehmm trains and evaluates one hidden Markov
// model per class on zoning features.
package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	hmm "github.com/unixpickle/discrete-hmm"
	"github.com/unixpickle/discrete-hmm/hmmio"
	"github.com/unixpickle/discrete-hmm/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "zonehmm",
		Short:        "Classify zoning features with hidden Markov models",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	root.AddCommand(
		a.trainCmd(),
		a.evalCmd(),
		a.generateCmd(),
		a.decodeCmd(),
		a.zoneCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("bad log level: %w", err)
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(),
		&slog.HandlerOptions{Level: level}))
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

func (a *app) random() *rand.Rand {
	return rand.New(rand.NewSource(a.cfg.Seed))
}

func loadModels(path string) (map[string]*hmm.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return hmmio.LoadSet(f)
}

func loadClassModel(path, class string) (*hmm.Model, error) {
	models, err := loadModels(path)
	if err != nil {
		return nil, err
	}
	m, ok := models[class]
	if !ok {
		return nil, fmt.Errorf("no model for class %q", class)
	}
	return m, nil
}
