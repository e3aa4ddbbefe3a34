package service

import (
	"context"
	"errors"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/sms-ledger/internal/ledger"
	"github.com/carson-networks/sms-ledger/internal/operator/actions"
	"github.com/carson-networks/sms-ledger/internal/pipeline"
	"github.com/carson-networks/sms-ledger/internal/sms"
)

var ErrInvalidEntry = errors.New("sender and message are required")

type extractor interface {
	Extract(ctx context.Context, msg sms.Message) pipeline.Outcome
}

type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// IngestService runs messages through the pipeline and persists what it
// builds. Single messages, batches and backlog scans all go through Ingest.
type IngestService struct {
	pipeline     extractor
	operator     actionProcessor
	batchWorkers int
	now          func() time.Time
}

func NewIngestService(p extractor, op actionProcessor, batchWorkers int) *IngestService {
	if batchWorkers < 1 {
		batchWorkers = 1
	}
	return &IngestService{
		pipeline:     p,
		operator:     op,
		batchWorkers: batchWorkers,
		now:          time.Now,
	}
}

// Ingest extracts and persists one message. Storage errors come back as a
// PersistenceFailed outcome, never as a panic or a dropped message.
func (s *IngestService) Ingest(ctx context.Context, msg sms.Message) pipeline.Outcome {
	out := s.pipeline.Extract(ctx, msg)
	if !out.Produced() {
		return out
	}

	action := &actions.PersistTransaction{Record: out.Record}
	if err := s.operator.Process(ctx, action); err != nil {
		out.Kind = pipeline.KindPersistenceFailed
		out.Err = err
		return out
	}

	out.Kind = pipeline.KindPersisted
	out.Record = action.Stored
	return out
}

// BatchEntry is one message as submitted by the device app.
type BatchEntry struct {
	Sender    string
	Message   string
	Timestamp string
}

type BatchItem struct {
	Index   int
	Outcome pipeline.Outcome
}

type BatchResult struct {
	Processed int
	Total     int
	Items     []BatchItem
}

// Batch ingests entries concurrently and reports one item per entry, in
// input order. A failing entry never stops the others.
func (s *IngestService) Batch(ctx context.Context, entries []BatchEntry) BatchResult {
	items := make([]BatchItem, len(entries))
	receivedAt := s.now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)
	for i, entry := range entries {
		items[i].Index = i
		if entry.Sender == "" || entry.Message == "" {
			items[i].Outcome = pipeline.Outcome{Kind: pipeline.KindInvalid, Err: ErrInvalidEntry}
			continue
		}
		msg := sms.Message{
			Sender:     entry.Sender,
			Body:       entry.Message,
			ReceivedAt: sms.ParseTimestamp(entry.Timestamp, receivedAt),
		}
		g.Go(func() error {
			items[i].Outcome = s.Ingest(gctx, msg)
			return nil
		})
	}
	_ = g.Wait()

	result := BatchResult{Total: len(entries), Items: items}
	for _, item := range items {
		if item.Outcome.Kind == pipeline.KindPersisted {
			result.Processed++
		}
	}
	return result
}

// BacklogReport tallies a backlog scan.
type BacklogReport struct {
	Counts map[pipeline.Kind]int
	Index  *ledger.Index
}

// Backlog drains src sequentially. With dryRun set nothing is persisted and
// built records are still folded into the index. visit, when non-nil, sees
// every outcome in arrival order.
func (s *IngestService) Backlog(ctx context.Context, src sms.Source, dryRun bool, visit func(sms.Message, pipeline.Outcome)) (BacklogReport, error) {
	report := BacklogReport{
		Counts: make(map[pipeline.Kind]int),
		Index:  ledger.NewIndex(),
	}
	for {
		msg, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return report, nil
		}
		if err != nil {
			return report, err
		}

		var out pipeline.Outcome
		if dryRun {
			out = s.pipeline.Extract(ctx, msg)
		} else {
			out = s.Ingest(ctx, msg)
		}

		report.Counts[out.Kind]++
		if out.Produced() {
			report.Index.Add(out.Record)
		}
		if visit != nil {
			visit(msg, out)
		}
	}
}
