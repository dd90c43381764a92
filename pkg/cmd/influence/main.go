package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gilchrisn/influence-maximization/pkg/graph"
	"github.com/gilchrisn/influence-maximization/pkg/influence"
)

// flagKeys maps command-line flags to configuration keys
var flagKeys = map[string]string{
	"model":        "algorithm.model",
	"num-seeds":    "algorithm.k",
	"simulations":  "algorithm.num_simulations",
	"seed":         "algorithm.random_seed",
	"probability":  "algorithm.probability",
	"weight-cap":   "algorithm.weight_cap",
	"candidates":   "candidates.strategy",
	"top-n":        "candidates.top_n",
	"nodes":        "candidates.nodes",
	"workers":      "performance.num_workers",
	"timeout":      "performance.timeout",
	"progress":     "logging.enable_progress",
	"log-level":    "logging.level",
	"format":       "output.format",
	"metrics-addr": "metrics.addr",
}

type app struct {
	config     *influence.Config
	configFile string
	graphFile  string
	dataset    string
	logger     zerolog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("Command failed")
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{config: influence.NewConfig()}

	root := &cobra.Command{
		Use:           "influence",
		Short:         "Influence maximization under Independent Cascade and Linear Threshold diffusion",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "configuration file (yaml, json or toml)")
	pf.StringVar(&a.graphFile, "graph", "", "edge list file (csv or whitespace separated)")
	pf.StringVar(&a.dataset, "dataset", "karate", "built-in dataset used when --graph is not set (karate, star:N, clique:N, path:N)")
	pf.String("log-level", "info", "log level (trace, debug, info, warn, error, disabled)")
	pf.String("format", influence.FormatJSON, "output format (json or yaml)")
	pf.String("metrics-addr", "", "serve prometheus metrics on this address while running, e.g. :9090")

	root.AddCommand(newSelectCmd(a), newEstimateCmd(a))
	return root
}

func addModelFlags(fs *pflag.FlagSet) {
	fs.String("model", "independent_cascade", "diffusion model (independent_cascade|ic, linear_threshold|lt)")
	fs.Int("simulations", influence.DefaultNumSimulations, "Monte-Carlo runs per spread estimate")
	fs.Int64("seed", 42, "random seed")
	fs.Float64("probability", 0.1, "activation probability of every edge (independent cascade)")
	fs.Float64("weight-cap", 0.9, "sum of the incoming weights of every node (linear threshold)")
	fs.Int("workers", 0, "worker goroutines, 0 for one per CPU")
	fs.Duration("timeout", 0, "stop after this long, 0 for no limit")
}

func newSelectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select k seed nodes with the greedy algorithm",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSelect(cmd)
		},
	}

	fs := cmd.Flags()
	addModelFlags(fs)
	fs.IntP("num-seeds", "k", 5, "number of seeds to select")
	fs.String("candidates", influence.StrategyAll, "candidate pool (all, centrality, list)")
	fs.Int("top-n", 50, "size of the centrality candidate pool")
	fs.StringSlice("nodes", nil, "candidate nodes for the list strategy")
	fs.Bool("progress", true, "log every greedy round")
	return cmd
}

func newEstimateCmd(a *app) *cobra.Command {
	var seeds []string

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the expected spread of a seed set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEstimate(cmd, seeds)
		},
	}

	addModelFlags(cmd.Flags())
	cmd.Flags().StringSliceVar(&seeds, "seeds", nil, "seed nodes, comma separated")
	cmd.MarkFlagRequired("seeds")
	return cmd
}

// setup loads the config file, binds flags and creates the logger
func (a *app) setup(cmd *cobra.Command) error {
	if a.configFile != "" {
		if err := a.config.LoadFromFile(a.configFile); err != nil {
			return fmt.Errorf("failed to load config %s: %w", a.configFile, err)
		}
	}

	for name, key := range flagKeys {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := a.config.BindFlag(key, flag); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	a.logger = a.config.CreateLogger()
	log.Logger = a.logger
	return nil
}

func (a *app) loadGraph() (*graph.Graph, error) {
	var (
		g   *graph.Graph
		err error
	)
	if a.graphFile != "" {
		g, err = graph.LoadEdgeList(a.graphFile)
	} else {
		g, err = graph.Dataset(a.dataset)
	}
	if err != nil {
		return nil, err
	}

	source := a.graphFile
	if source == "" {
		source = a.dataset
	}
	a.logger.Info().
		Str("source", source).
		Int("nodes", g.NumNodes()).
		Int("edges", g.NumEdges()).
		Int("self_loops_dropped", g.SelfLoops()).
		Msg("Graph loaded")
	return g, nil
}

func (a *app) runSelect(cmd *cobra.Command) error {
	g, err := a.loadGraph()
	if err != nil {
		return err
	}

	stopMetrics := a.serveMetrics()
	defer stopMetrics()

	result, err := influence.RunWithLogger(cmd.Context(), g, a.config, a.logger)
	if err != nil {
		if result == nil {
			return err
		}
		a.logger.Warn().Err(err).Int("seeds", len(result.Seeds)).Msg("Selection interrupted, writing partial result")
	}

	if werr := influence.WriteResult(cmd.OutOrStdout(), result, a.config.OutputFormat()); werr != nil {
		return werr
	}
	return err
}

func (a *app) runEstimate(cmd *cobra.Command, seeds []string) error {
	g, err := a.loadGraph()
	if err != nil {
		return err
	}

	setup, err := influence.Prepare(g, a.config)
	if err != nil {
		return err
	}

	stopMetrics := a.serveMetrics()
	defer stopMetrics()

	ctx := cmd.Context()
	if timeout := a.config.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	startTime := time.Now()
	estimate, err := setup.Estimator.EstimateIDs(ctx, seeds)
	if err != nil {
		return err
	}

	a.logger.Info().
		Strs("seeds", seeds).
		Float64("spread", estimate.Mean).
		Float64("std_err", estimate.StdErr).
		Int64("runtime_ms", time.Since(startTime).Milliseconds()).
		Msg("Spread estimated")

	if err := influence.WriteEstimate(cmd.OutOrStdout(), seeds, estimate, a.config.OutputFormat()); err != nil {
		return err
	}
	return nil
}

// serveMetrics exposes /metrics when an address is configured and returns
// a function that shuts the server down
func (a *app) serveMetrics() func() {
	addr := a.config.MetricsAddr()
	if addr == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error().Err(err).Str("addr", addr).Msg("Metrics server failed")
		}
	}()
	a.logger.Info().Str("addr", addr).Msg("Serving metrics")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}
}
