package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"spacewars/config"
	"spacewars/engine"
	"spacewars/experiments"
	"spacewars/replay"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a JSON or YAML config file")
	experiment := flag.String("experiment", "", "Experiment to run instead of a single game: "+strings.Join(experiments.Names(), ", "))
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *experiment != "" {
		err = runExperiment(ctx, cfg, *experiment)
	} else {
		err = runGame(ctx, cfg)
	}
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		stop()
		os.Exit(1)
	}
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

func runExperiment(ctx context.Context, cfg config.Config, name string) error {
	run, ok := experiments.All[name]
	if !ok {
		return fmt.Errorf("unknown experiment %q, expected one of: %s", name, strings.Join(experiments.Names(), ", "))
	}
	return run(ctx, cfg)
}

// runGame plays the configured matchup once and records a replay if enabled.
func runGame(ctx context.Context, cfg config.Config) (err error) {
	human := experiments.AgentConfigFor(cfg, cfg.Game.HumanAI, 1)
	alien := experiments.AgentConfigFor(cfg, cfg.Game.AlienAI, 2)

	var observers []engine.Observer
	if cfg.Replay.Enabled {
		recorder, rerr := replay.NewRecorder(cfg.Replay.Path, cfg.Game.HumanAI, cfg.Game.AlienAI)
		if rerr != nil {
			return rerr
		}
		defer func() {
			err = errors.Join(err, recorder.Close())
		}()
		observers = append(observers, recorder)
	}

	winner, gameMetric, _, err := experiments.PlayGame(ctx, cfg, human, alien, cfg.Search.Seed, observers...)
	if err != nil {
		return err
	}
	if winner == "" {
		winner = "none"
	}
	log.Info().
		Str("winner", winner).
		Int("ticks", gameMetric.Ticks).
		Int("moves", gameMetric.Moves).
		Dur("duration", gameMetric.Duration).
		Msg("game finished")
	if cfg.Replay.Enabled {
		log.Info().Str("path", cfg.Replay.Path).Msg("replay written")
	}
	return nil
}
