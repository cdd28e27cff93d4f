package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ukydev/transport-sim/internal/config"
	"github.com/ukydev/transport-sim/internal/console"
	"github.com/ukydev/transport-sim/internal/db"
	"github.com/ukydev/transport-sim/internal/logging"
	"github.com/ukydev/transport-sim/internal/models"
	"github.com/ukydev/transport-sim/internal/sim"
)

type rootOptions struct {
	envFile  string
	seed     int64
	logLevel string
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "simulator",
		Short:         "Autonomous transport vehicle simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return runConsole(cmd.Context(), cfg, in, out)
		},
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "load environment variables from this file")
	root.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "seed for obstacle generation (0 = time based)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.SetIn(in)
	root.SetOut(out)
	root.AddCommand(newJournalCmd(opts, out))
	return root
}

func newJournalCmd(opts *rootOptions, out io.Writer) *cobra.Command {
	var (
		missionID string
		limit     int64
		clearAll  bool
	)
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Print or clear recorded simulation events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if !cfg.JournalEnabled() {
				return fmt.Errorf("journal disabled: MONGO_URI is not set")
			}
			client, coll, err := openJournal(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer client.Disconnect(context.Background())

			if clearAll {
				if err := coll.DeleteAll(cmd.Context()); err != nil {
					return fmt.Errorf("clear journal: %w", err)
				}
				fmt.Fprintln(out, "Journal cleared.")
				return nil
			}
			events, err := db.ReadJournal(cmd.Context(), coll, missionID, limit)
			if err != nil {
				return err
			}
			printEvents(out, events)
			return nil
		},
	}
	cmd.Flags().StringVar(&missionID, "mission", "", "only show events for this mission id")
	cmd.Flags().Int64Var(&limit, "limit", 0, "maximum number of events to show (0 = all)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete every recorded event")
	return cmd
}

func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = opts.seed
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runConsole(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	observer := console.NewObserver(out)

	if cfg.JournalEnabled() {
		client, coll, err := openJournal(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Disconnect(context.Background())
		observer = models.MultiObserver(observer, &db.Journal{Collection: coll, Timeout: cfg.JournalTimeout})
	}

	log.WithFields(log.Fields{
		"seed":    seed,
		"journal": cfg.JournalEnabled(),
	}).Info("Starting transport simulation")

	env := sim.NewEnvironment(observer, sim.NewObstacleGenerator(rand.New(rand.NewSource(seed))))
	return console.New(env, in, out).Run(ctx)
}

func openJournal(ctx context.Context, cfg *config.Config) (*mongo.Client, *db.MongoCollection, error) {
	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		return nil, nil, fmt.Errorf("connect journal: %w", err)
	}
	coll := &db.MongoCollection{Collection: client.Database(cfg.MongoDatabase).Collection(cfg.JournalCollection)}
	return client, coll, nil
}

func printEvents(out io.Writer, events []models.Event) {
	if len(events) == 0 {
		fmt.Fprintln(out, "No events recorded.")
		return
	}
	for _, e := range events {
		fmt.Fprintf(out, "%s [%s] %s\n", e.Timestamp.Format(time.RFC3339), e.MissionID, e.Message)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Error("Simulator failed")
		stop()
		os.Exit(1)
	}
}
