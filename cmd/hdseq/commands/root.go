package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Amansingh-afk/hdseq"
	"github.com/Amansingh-afk/hdseq/internal/telemetry"
	"github.com/Amansingh-afk/hdseq/internal/version"
)

// settings is the resolved configuration of one invocation.
type settings struct {
	Dims         int
	NGram        int
	Symbols      int
	K            int
	Seed         int64
	Workers      int
	Verbose      bool
	Trace        bool
	OtelEndpoint string
}

// app carries per-invocation state from PersistentPreRunE to the subcommands.
type app struct {
	v        *viper.Viper
	cfgFile  string
	cfgRead  bool
	log      *slog.Logger
	shutdown func(context.Context) error
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree with a fresh Viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "hdseq",
		Short: "Hyperdimensional sequence classifier",
		Long: `hdseq encodes integer sequences into binary hypervectors from
position-bound n-grams and classifies them by k nearest neighbors
in Hamming distance.`,
		Version:       version.Current,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "Config file (default $HOME/.hdseq.yaml)")
	pf.Int("dims", 10000, "Hypervector dimension")
	pf.Int("ngram", 3, "N-gram window width")
	pf.Int("symbols", 10, "Alphabet size: symbols are 0..symbols-1")
	pf.Int("k", 1, "Neighbors consulted per prediction")
	pf.Int64("seed", 0, "Seed for the random hypervector tables")
	pf.Int("workers", hdseq.DefaultWorkers(), "Parallel encode/classify workers")
	pf.BoolP("verbose", "v", false, "Debug logging")
	pf.Bool("trace", false, "Print trace spans to stderr")
	pf.String("otel-endpoint", "", "OTLP/HTTP endpoint for trace export")
	_ = a.v.BindPFlags(pf)

	root.AddCommand(newDemoCmd(a), newClassifyCmd(a), newInfoCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	if err := a.loadConfig(); err != nil {
		return err
	}
	s := a.settings()

	level := slog.LevelInfo
	if s.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	a.log = slog.New(handler).With("run_id", uuid.NewString(), "command", cmd.Name())

	if s.Trace || s.OtelEndpoint != "" {
		cfg := telemetry.Config{Endpoint: s.OtelEndpoint}
		if s.Trace {
			cfg.Writer = cmd.ErrOrStderr()
		}
		shutdown, err := telemetry.Init(cmd.Context(), version.AppName, version.Current, cfg)
		if err != nil {
			a.log.Warn("telemetry failed", "error", err)
		} else {
			a.shutdown = shutdown
		}
	}
	return nil
}

// runE wraps a subcommand so the tracer provider is flushed whether or not
// the command fails. Cobra skips PersistentPostRunE after a RunE error, and
// those are the runs whose spans carry the error status.
func (a *app) runE(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if ferr := a.flush(cmd.Context()); ferr != nil {
				a.log.Warn("telemetry shutdown failed", "error", ferr)
				if err == nil {
					err = ferr
				}
			}
		}()
		return run(cmd, args)
	}
}

// flush shuts the tracer provider down once; later calls are no-ops.
func (a *app) flush(ctx context.Context) error {
	shutdown := a.shutdown
	a.shutdown = nil
	if shutdown == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return shutdown(ctx)
}

// loadConfig layers .env, the config file and HDSEQ_* variables under the flags.
func (a *app) loadConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	a.v.SetEnvPrefix("HDSEQ")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		a.v.SetConfigFile(filepath.Join(home, ".hdseq.yaml"))
		a.v.SetConfigType("yaml")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile == "" && (errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	a.cfgRead = true
	return nil
}

func (a *app) settings() settings {
	return settings{
		Dims:         a.v.GetInt("dims"),
		NGram:        a.v.GetInt("ngram"),
		Symbols:      a.v.GetInt("symbols"),
		K:            a.v.GetInt("k"),
		Seed:         a.v.GetInt64("seed"),
		Workers:      a.v.GetInt("workers"),
		Verbose:      a.v.GetBool("verbose"),
		Trace:        a.v.GetBool("trace"),
		OtelEndpoint: a.v.GetString("otel-endpoint"),
	}
}

// newModel builds a Model from the resolved settings. symbols overrides the
// configured alphabet size when positive.
func (a *app) newModel(symbols int) (*hdseq.Model, error) {
	s := a.settings()
	if symbols <= 0 {
		symbols = s.Symbols
	}
	return hdseq.New(
		hdseq.WithDims(s.Dims),
		hdseq.WithNGramSize(s.NGram),
		hdseq.WithSymbols(symbols),
		hdseq.WithK(s.K),
		hdseq.WithSeed(s.Seed),
		hdseq.WithWorkers(s.Workers),
		hdseq.WithLogger(a.log),
	)
}
