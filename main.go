package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"scrim/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML experiment config, defaults when empty")
	trials := flag.Int("trials", 0, "Trials per scenario, overrides the config when positive")
	scenario := flag.String("scenario", "", "Only run the named scenario")
	out := flag.String("out", "experiments", "Directory for CSV records, none when empty")
	throughput := flag.Bool("throughput", false, "Measure search throughput instead of playing trials")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := experiments.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = experiments.LoadConfig(*configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
	}
	if *trials > 0 {
		cfg.Trials = *trials
	}
	if *scenario != "" {
		s, ok := cfg.Scenario(*scenario)
		if !ok {
			log.Fatal().Msgf("unknown scenario %q", *scenario)
		}
		cfg.Scenarios = []experiments.Scenario{s}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *throughput {
		budgets := []time.Duration{10 * time.Millisecond, 50 * time.Millisecond, 250 * time.Millisecond}
		arena := experiments.NewArena(cfg)
		for _, s := range cfg.Scenarios {
			if _, err := arena.RunThroughputExperiment(s, budgets); err != nil {
				log.Fatal().Err(err).Msg("throughput experiment failed")
			}
		}
		return
	}

	if _, err := experiments.RunExperiment(ctx, cfg, "regression", *out); err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
}
