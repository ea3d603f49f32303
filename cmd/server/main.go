package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rl1809/food-delivery/internal/app"
	"github.com/rl1809/food-delivery/internal/config"
	"github.com/rl1809/food-delivery/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Food delivery escrow engine",
	Long: `server runs the food delivery engine: restaurants list foods, customers
place escrowed orders, and funds are released to the restaurant when the
customer confirms delivery. It serves HTTP and gRPC and optionally journals
every committed operation to MySQL, PostgreSQL or SQLite.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	config.AddFlags(rootCmd.Flags())
}

func run(cmd *cobra.Command, _ []string) error {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v).Get()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to start", zap.Error(err))
		return err
	}
	return application.Run(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
