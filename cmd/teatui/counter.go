package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/on-the-ground/teatui/examples/counter"
	"github.com/on-the-ground/teatui/internal/logging"
	"github.com/on-the-ground/teatui/tea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var errNotATerminal = errors.New("stdout is not a terminal")

var counterCmd = &cobra.Command{
	Use:   "counter",
	Short: "Run the counter demo",
	Long:  `Right increments, Left decrements, s saves the count to --save-file, q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		savePath, _ := cmd.Flags().GetString("save-file")
		return runProgram(cmd, counter.Program(savePath))
	},
}

// runProgram wires logging, metrics and signals around one demo program.
func runProgram[S, M, E any](cmd *cobra.Command, program tea.Program[S, M, E]) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNotATerminal
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics, err := tea.NewMetrics(reg)
	if err != nil {
		return err
	}
	if cfg.Metrics.Addr != "" {
		stop := serveMetrics(cfg.Metrics.Addr, reg, logger)
		defer stop()
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	err = tea.Start(ctx, program,
		tea.WithLogger(logger),
		tea.WithEffects(cfg.Effects),
		tea.WithMetrics(metrics),
	)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func init() {
	rootCmd.AddCommand(counterCmd)
	counterCmd.Flags().String("save-file", "counter.txt", "File the s key writes the count to")
}

// serveMetrics exposes reg over HTTP until the returned function is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *zap.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", zap.String("addr", addr), zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", fmt.Sprintf("http://%s/metrics", addr)))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
