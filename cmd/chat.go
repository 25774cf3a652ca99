package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/talentscout/internal/console"
	"github.com/spigell/talentscout/internal/intake"
	"github.com/spigell/talentscout/internal/metrics"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Screen a candidate in the terminal",
	Run: func(_ *cobra.Command, _ []string) {
		chat()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func chat() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, config := setup()
	defer logger.Sync()

	machine, err := newMachine(ctx, config, metrics.Nop{}, logger)
	if err != nil {
		logger.Fatal("building intake", zap.Error(err))
	}

	c := console.New(machine, console.PromptUI{}, os.Stdout, metrics.Nop{}, logger)
	if err := c.Run(ctx, intake.NewSession()); err != nil && ctx.Err() == nil {
		logger.Fatal("chat failed", zap.Error(err))
	}
}
