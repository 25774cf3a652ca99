package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/talentscout/internal/metrics"
	"github.com/spigell/talentscout/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve intake sessions over a websocket",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address (default :8080)")

	viper.BindPFlag("serve.listen", serveCmd.Flags().Lookup("listen"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, config := setup()
	defer logger.Sync()

	var (
		recorder metrics.Recorder = metrics.Nop{}
		gatherer prometheus.Gatherer
	)
	if config.Serve.Metrics {
		recorder = metrics.NewPrometheusRecorder(prometheus.DefaultRegisterer)
		gatherer = prometheus.DefaultGatherer
	}

	machine, err := newMachine(ctx, config, recorder, logger)
	if err != nil {
		logger.Fatal("building intake", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              config.Serve.Listen,
		Handler:           server.New(machine, recorder, gatherer, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("address", srv.Addr), zap.Bool("metrics", gatherer != nil))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serving", zap.Error(err))
	}
}
