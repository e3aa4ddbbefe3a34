package service

import (
	"github.com/carson-networks/sms-ledger/internal/operator"
	"github.com/carson-networks/sms-ledger/internal/pipeline"
	"github.com/carson-networks/sms-ledger/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Ingest *IngestService
	Report *ReportService
}

// NewService wires the services to one storage handle and one worker pool.
func NewService(store *storage.Storage, p *pipeline.Pipeline, op *operator.OperatorDelegator, batchWorkers int) *Service {
	return &Service{
		Ingest: NewIngestService(p, op, batchWorkers),
		Report: NewReportService(store.Read().Transactions),
	}
}
