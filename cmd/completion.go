package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	global := map[string]complete.Predictor{
		"config":    predict.Files("*.yaml"),
		"log-level": predict.Set{"debug", "info", "warn", "error"},
	}
	return &complete.Command{
		Flags: global,
		Sub: map[string]*complete.Command{
			"run": {
				Flags: map[string]complete.Predictor{"plain": predict.Nothing},
			},
			"play": {
				Flags: map[string]complete.Predictor{
					"realtime": predict.Nothing,
					"plain":    predict.Nothing,
				},
				Args: predict.Files("*"),
			},
			"quotes": {
				Flags: map[string]complete.Predictor{
					"n":      predict.Something,
					"follow": predict.Nothing,
				},
			},
			"topic": {
				Flags: map[string]complete.Predictor{"list": predict.Nothing},
				Args:  predict.Set(topicNames()),
			},
			"help":     {Args: predict.Set{"run", "play", "quotes", "topic"}},
			"commands": {},
			"flags":    {},
		},
	}
}
