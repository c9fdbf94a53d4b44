package cmd

import (
	"github.com/etnz/papertrade/config"
	"github.com/etnz/papertrade/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete answers a shell completion request for the program name, and
// exits, when one is pending. Otherwise it returns immediately.
//
// Run "COMP_INSTALL=1 pts" to install the completion in the shell.
func Complete(name string) {
	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		cfg = config.Default()
	}
	completion(cfg).Complete(name)
}

// completion describes the pts command line for the shell completion.
func completion(cfg *config.Config) *complete.Command {
	symbols := predict.Set(cfg.Catalog().Symbols())
	topics, _ := docs.GetAllTopics()
	raw := map[string]complete.Predictor{"raw": predict.Nothing}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config":         predict.Files("*.yaml"),
			"portfolio-file": predict.Files("*"),
		},
		Sub: map[string]*complete.Command{
			"trade":   {},
			"market":  {Flags: raw},
			"holding": {Flags: raw},
			"tx": {Flags: map[string]complete.Predictor{
				"s":    symbols,
				"head": predict.Nothing,
				"tail": predict.Nothing,
				"raw":  predict.Nothing,
			}},
			"topic": {Flags: raw, Args: predict.Set(append(topics, "*"))},
			"help":  {},
			"flags": {},
		},
	}
}
