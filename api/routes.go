package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/sms-ledger/internal/handlers/v1/report"
	"github.com/carson-networks/sms-ledger/internal/handlers/v1/sms"
	"github.com/carson-networks/sms-ledger/internal/handlers/v1/status"
	"github.com/carson-networks/sms-ledger/internal/logging"
	"github.com/carson-networks/sms-ledger/internal/service"
	"github.com/carson-networks/sms-ledger/internal/storage"
)

const shutdownTimeout = 15 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Storage *storage.Storage
}

// Routes builds the mux with every endpoint registered.
func (r *Rest) Routes() http.Handler {
	mux := http.NewServeMux()

	api := humago.New(mux, huma.DefaultConfig("SMS Ledger API", "1.0.0"))
	api.UseMiddleware(logging.Middleware(r.Logger))

	sms.NewProcessMessagesHandler(r.Service.Ingest).Register(api)
	sms.NewTestMessageHandler(r.Service.Ingest).Register(api)
	report.NewHandler(r.Service.Report).Register(api)

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	return mux
}

// Serve blocks until ctx is cancelled or the listener fails.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Routes(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
