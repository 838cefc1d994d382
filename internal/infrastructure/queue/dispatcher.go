package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/docstream/document-platform/internal/api/metrics"
	"github.com/docstream/document-platform/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Submitter is the outbound call a worker makes for each dequeued request.
type Submitter interface {
	Submit(ctx context.Context, documentID int64) error
}

// Dispatcher fans committed ingestion requests out to a fixed set of
// workers, sharded by document id so submissions for the same document stay
// ordered.
type Dispatcher struct {
	workers []chan domain.IngestionRequest
	client  Submitter
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, client Submitter, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.IngestionRequest, numWorkers),
		client:  client,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.IngestionRequest, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a committed request to the worker responsible for its
// document. Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(req domain.IngestionRequest) {
	d.workers[d.shardIndex(req.DocumentID)] <- req
}

func (d *Dispatcher) shardIndex(documentID int64) int {
	idx := documentID % int64(len(d.workers))
	if idx < 0 {
		idx = -idx
	}
	return int(idx)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.IngestionRequest) {
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-ch:
			if !ok {
				return
			}
			if err := d.client.Submit(ctx, req.DocumentID); err != nil {
				metrics.ProcessorSubmissionsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Int64("ingestion_id", req.ID).
					Int64("document_id", req.DocumentID).
					Int("worker_id", id).
					Msg("processor submission failed")
				continue
			}
			metrics.ProcessorSubmissionsTotal.WithLabelValues("ok").Inc()
			d.log.Debug().
				Int64("ingestion_id", req.ID).
				Int("worker_id", id).
				Msg("processor submission sent")
		}
	}
}
