package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/sms-ledger/api"
	"github.com/carson-networks/sms-ledger/internal/config"
	"github.com/carson-networks/sms-ledger/internal/enrichment"
	"github.com/carson-networks/sms-ledger/internal/logging"
	"github.com/carson-networks/sms-ledger/internal/operator"
	"github.com/carson-networks/sms-ledger/internal/parser"
	"github.com/carson-networks/sms-ledger/internal/pipeline"
	"github.com/carson-networks/sms-ledger/internal/service"
	"github.com/carson-networks/sms-ledger/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.WithField("storageDriver", envConfig.StorageDriver).Info("sms-ledger starting")

	dbStorage, err := storage.Open(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.Open")
		return
	}
	defer dbStorage.Close()

	var enricher pipeline.Enricher
	if envConfig.EnrichmentEnabled() {
		enricher = enrichment.NewClient(enrichment.Config{
			URL:     envConfig.EnrichmentURL,
			APIKey:  envConfig.EnrichmentAPIKey,
			Model:   envConfig.EnrichmentModel,
			Timeout: envConfig.EnrichmentTimeout,
		})
	} else {
		logger.Info("enrichment disabled, using rule-based extraction only")
	}

	p := pipeline.New(parser.NewFilter(envConfig.BankSenders), enricher, logger)

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	svc := service.NewService(dbStorage, p, delegator, envConfig.OperatorWorkers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.HTTPPort,
			Service: svc,
			Storage: dbStorage,
		}
		return httpRest.Serve(ctx)
	})

	if err := g.Wait(); err != nil {
		logger.WithError(err).Error("sms-ledger stopped with error")
	}
	logger.Info("sms-ledger stopped")
}
