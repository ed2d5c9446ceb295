package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hivellm/go-vectorizer"
)

type globalOptions struct {
	ConfigPath     string
	Addr           string
	Master         string
	Replicas       []string
	ReadPreference string
	APIKey         string
	Timeout        time.Duration
	Verbose        bool
}

var globalFlags globalOptions

var rootCmd = &cobra.Command{
	Use:   "vectorizer-cli",
	Short: "Command line client for a Vectorizer master/replica deployment",
	Long: `vectorizer-cli talks to a Vectorizer deployment: one master node that
accepts every operation and any number of read replicas. Reads follow the
selected read preference and rotate over the replicas; writes always go to
the master. When a node is unreachable the client fails over to the next
candidate.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command; a non-nil error exits with status 1.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalFlags.ConfigPath, "config", "", "path to a YAML configuration file")
	flags.StringVar(&globalFlags.Addr, "addr", "", "URL of a single-node deployment (shorthand for --master)")
	flags.StringVar(&globalFlags.Master, "master", "", "URL of the master node")
	flags.StringArrayVar(&globalFlags.Replicas, "replica", nil, "URL of a read replica, repeatable")
	flags.StringVar(&globalFlags.ReadPreference, "read-preference", "", "routing target for reads: master, replica or nearest")
	flags.StringVar(&globalFlags.APIKey, "api-key", "", "bearer token sent with every request")
	flags.DurationVar(&globalFlags.Timeout, "timeout", 0, "per-node request timeout")
	flags.BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "log requests and failovers to stderr")
}

// buildClient assembles a vectorizer client from the configuration file and
// the command line, flags winning over the file.
func buildClient() (*vectorizer.Client, error) {
	var opts vectorizer.Opts
	if globalFlags.ConfigPath != "" {
		cfg, err := loadConfig(globalFlags.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", globalFlags.ConfigPath, err)
		}
		opts.Topology = vectorizer.Topology{
			Master:   cfg.Vectorizer.Master,
			Replicas: cfg.Vectorizer.Replicas,
		}
		opts.ReadPreference = cfg.Vectorizer.ReadPreference
		opts.APIKey = cfg.Vectorizer.APIKey
		opts.Timeout = time.Duration(cfg.Vectorizer.Timeout)
	}
	if globalFlags.Addr != "" {
		opts.Addr = globalFlags.Addr
	}
	if globalFlags.Master != "" {
		opts.Topology.Master = globalFlags.Master
	}
	if len(globalFlags.Replicas) > 0 {
		opts.Topology.Replicas = globalFlags.Replicas
	}
	if globalFlags.ReadPreference != "" {
		preference, err := vectorizer.ParseReadPreference(globalFlags.ReadPreference)
		if err != nil {
			return nil, err
		}
		opts.ReadPreference = preference
	}
	if globalFlags.APIKey != "" {
		opts.APIKey = globalFlags.APIKey
	}
	if globalFlags.Timeout > 0 {
		opts.Timeout = globalFlags.Timeout
	}
	if globalFlags.Verbose {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().Timestamp().Logger()
		opts.Logger = &logger
	}
	return vectorizer.New(opts)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
