package pipeline

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/sms-ledger/internal/enrichment"
	"github.com/carson-networks/sms-ledger/internal/ledger"
	"github.com/carson-networks/sms-ledger/internal/parser"
	"github.com/carson-networks/sms-ledger/internal/sms"
)

// Enricher is the optional higher-accuracy extraction path.
//
//go:generate mockery --name Enricher --output mock_Enricher.go
type Enricher interface {
	Enrich(ctx context.Context, body string) (enrichment.Result, error)
}

// Pipeline turns one message into an Outcome. It holds no per-message state
// and can be shared by any number of goroutines.
type Pipeline struct {
	filter    *parser.Filter
	extractor *parser.Extractor
	enricher  Enricher
	logger    *logrus.Logger
}

// New builds a pipeline. enricher may be nil, in which case only the
// deterministic path runs.
func New(filter *parser.Filter, enricher Enricher, logger *logrus.Logger) *Pipeline {
	return &Pipeline{
		filter:    filter,
		extractor: parser.NewExtractor(),
		enricher:  enricher,
		logger:    logger,
	}
}

// Extract never returns an error: every way a single message can go wrong
// is expressed as an Outcome kind.
func (p *Pipeline) Extract(ctx context.Context, msg sms.Message) Outcome {
	if !p.filter.Accepts(msg.Sender, msg.Body) {
		return p.done(msg, Outcome{Kind: KindFilteredOut})
	}

	var enrichErr error
	if p.enricher != nil {
		res, err := p.enricher.Enrich(ctx, msg.Body)
		if err == nil {
			out := p.build(msg, res.Direction, res.Fields, ledger.ProvenanceEnriched)
			if out.Produced() {
				return p.done(msg, out)
			}
			err = errors.New("enrichment: result not buildable")
		}
		enrichErr = err
		p.logger.WithError(err).WithField("sender", msg.Sender).Warn("Pipeline.Extract.enrichment fallback")
	}

	out := p.deterministic(msg)
	out.EnrichmentErr = enrichErr
	return p.done(msg, out)
}

func (p *Pipeline) deterministic(msg sms.Message) Outcome {
	direction, ok := parser.Classify(msg.Body)
	if !ok {
		return Outcome{Kind: KindUnclassifiable}
	}
	fields := p.extractor.Extract(msg.Body, direction)
	return p.build(msg, direction, fields, ledger.ProvenanceRuleBased)
}

func (p *Pipeline) build(msg sms.Message, direction ledger.Direction, fields ledger.Fields, provenance ledger.Provenance) Outcome {
	record, err := ledger.Build(ledger.Draft{
		Direction:  direction,
		Fields:     fields,
		Provenance: provenance,
		Source:     msg.Sender,
		RawMessage: msg.Body,
		ReceivedAt: msg.ReceivedAt,
	})
	switch {
	case errors.Is(err, ledger.ErrDirectionMissing):
		return Outcome{Kind: KindUnclassifiable}
	case err != nil:
		return Outcome{Kind: KindAmountMissing}
	}
	return Outcome{
		Kind:               KindBuilt,
		Record:             record,
		DateFromReceivedAt: !fields.Date.IsValue(),
	}
}

func (p *Pipeline) done(msg sms.Message, out Outcome) Outcome {
	p.logger.WithFields(logrus.Fields{
		"sender":     msg.Sender,
		"outcome":    out.Kind,
		"provenance": out.Record.Provenance,
	}).Debug("Pipeline.Extract.outcome")
	return out
}
