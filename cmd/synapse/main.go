// Package main is the entry point for the synapse CLI, an inspection tool
// for capability adaptation catalogs. It loads a declarative catalog of
// capabilities, types, and adaptation offers, and answers whether (and how)
// objects of a given type can be adapted to a target capability.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/normanking/synapse/internal/catalog"
	"github.com/normanking/synapse/internal/config"
	"github.com/normanking/synapse/internal/logging"
	"github.com/normanking/synapse/internal/tracedb"
	"github.com/normanking/synapse/pkg/adapt"
	"github.com/normanking/synapse/pkg/theme"
)

const version = "0.1.0"

var (
	cfgPath     string
	catalogPath string
	logLevel    string
)

func main() {
	theme.Init()

	rootCmd := &cobra.Command{
		Use:   "synapse",
		Short: "Synapse - capability adaptation resolver",
		Long: `Synapse resolves whether an object of some type can be treated as
satisfying a required capability, directly or by chaining registered
adaptation offers. The CLI loads a YAML catalog and answers resolution
queries against it.

Resolve a chain:    synapse resolve raw-file serializable
Check support:      synapse check raw-file serializable
List offers:        synapse offers
Recent traces:      synapse trace recent`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default ~/.synapse/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog file path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("synapse v%s\n", version)
		},
	})

	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(offersCmd())
	rootCmd.AddCommand(traceCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies CLI flag overrides.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgPath != "" {
		cfg, err = config.LoadFromPath(cfgPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if catalogPath != "" {
		cfg.Catalog = catalogPath
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Setup(cfg.Logging.Level, nil)
	return cfg, nil
}

// loadCatalog loads the configured catalog with a resolver logger attached.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	c, err := catalog.Load(cfg.Catalog, catalog.WithLogger(logging.Component("resolver")))
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.Catalog, err)
	}
	return c, nil
}

func resolveCmd() *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:   "resolve <type> <capability>",
		Short: "Resolve an adaptation chain from a type to a capability",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			obj, err := cat.NewObject(args[0])
			if err != nil {
				return err
			}
			target, ok := cat.Capability(args[1])
			if !ok {
				return fmt.Errorf("unknown capability %q", args[1])
			}

			result, trace, resolveErr := cat.Resolver().AdaptTraced(obj, target)

			if cfg.Trace.Enabled {
				if err := recordTrace(cfg, trace); err != nil {
					fmt.Fprintln(os.Stderr, theme.Dim.Render("warning: "+err.Error()))
				}
			}

			if resolveErr != nil {
				fmt.Println(theme.Failure.Render("✗ " + resolveErr.Error()))
				return resolveErr
			}

			switch trace.Outcome {
			case adapt.OutcomeProvided:
				fmt.Println(theme.Success.Render("✓ " + args[0] + " already provides " + args[1]))
			default:
				fmt.Println(theme.Success.Render(fmt.Sprintf("✓ adapted %s to %s (%d hops)",
					args[0], result.CapabilityType().Name(), trace.Hops)))
			}

			if explain {
				printSteps(trace)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, "show each applied offer on the chain")
	return cmd
}

func printSteps(trace *adapt.ResolutionTrace) {
	if len(trace.Steps) == 0 {
		fmt.Println(theme.Dim.Render("  no offers applied"))
		return
	}
	for i, step := range trace.Steps {
		line := fmt.Sprintf("  %d. %s -> %s (distance %d) => %s",
			i+1, step.From, step.To, step.Distance, step.Produced)
		fmt.Println(theme.Dim.Render(line))
	}
	fmt.Println(theme.Dim.Render(fmt.Sprintf("  trace %s, %s", trace.ID, trace.Duration)))
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <type> <capability>",
		Short: "Check whether a type supports a capability, directly or via adaptation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			obj, err := cat.NewObject(args[0])
			if err != nil {
				return err
			}
			target, ok := cat.Capability(args[1])
			if !ok {
				return fmt.Errorf("unknown capability %q", args[1])
			}

			if cat.Resolver().Supports(obj, target) {
				fmt.Println(theme.Success.Render("supported"))
				return nil
			}
			fmt.Println(theme.Failure.Render("not supported"))
			return fmt.Errorf("%s does not support %s", args[0], args[1])
		},
	}
}

func offersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "offers",
		Short: "List registered adaptation offers in registration order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}

			offers := cat.Resolver().Offers()
			fmt.Println(theme.Header.Render(fmt.Sprintf("%d offers registered", len(offers))))
			for i, offer := range offers {
				fmt.Printf("  %d. %s\n", i+1, offer)
			}
			return nil
		},
	}
}

func traceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect recorded resolution traces",
	}

	var limit int
	recent := &cobra.Command{
		Use:   "recent",
		Short: "Show the most recent recorded resolutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := tracedb.Open(cfg.Trace.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			traces, err := store.Recent(context.Background(), limit)
			if err != nil {
				return err
			}
			for _, trace := range traces {
				status := theme.Success.Render(string(trace.Outcome))
				if trace.Outcome == adapt.OutcomeNoPath {
					status = theme.Failure.Render(string(trace.Outcome))
				}
				fmt.Printf("%s  %s -> %s  %s  hops=%d\n",
					theme.Dim.Render(trace.ID), trace.ObjectType, trace.Target, status, trace.Hops)
			}
			return nil
		},
	}
	recent.Flags().IntVar(&limit, "limit", 20, "maximum number of traces to show")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recorded resolution in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := tracedb.Open(cfg.Trace.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			trace, err := store.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			if trace == nil {
				return fmt.Errorf("no trace with id %q", args[0])
			}

			fmt.Println(theme.Header.Render(trace.ID))
			fmt.Printf("  object:   %s\n", trace.ObjectType)
			fmt.Printf("  target:   %s\n", trace.Target)
			fmt.Printf("  outcome:  %s\n", trace.Outcome)
			fmt.Printf("  weight:   %d hops, distance %d\n", trace.Hops, trace.Distance)
			fmt.Printf("  duration: %s\n", trace.Duration)
			printSteps(trace)
			return nil
		},
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate recorded outcomes per target capability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := tracedb.Open(cfg.Trace.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.TargetStats(context.Background())
			if err != nil {
				return err
			}
			for _, stat := range stats {
				fmt.Printf("%-24s total=%d adapted=%d no_path=%d\n",
					stat.Target, stat.Total, stat.Adapted, stat.NoPath)
			}
			return nil
		},
	}

	cmd.AddCommand(recent, show, stats)
	return cmd
}

func recordTrace(cfg *config.Config, trace *adapt.ResolutionTrace) error {
	store, err := tracedb.Open(cfg.Trace.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(context.Background(), trace)
}
