package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carson-networks/sms-ledger/internal/config"
	"github.com/carson-networks/sms-ledger/internal/logging"
)

var (
	envConfig *config.Config
	logger    *logrus.Logger

	logLevel string
)

func Execute() error {
	root := &cobra.Command{
		Use:           "backlog",
		Short:         "Sweep previously received SMS into the ledger",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.ProcessEnvironmentVariables()
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			envConfig = cfg
			logger = logging.SetupLogging(cfg.LogLevel)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log_level from the environment")

	root.AddCommand(scanCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return root.ExecuteContext(ctx)
}
