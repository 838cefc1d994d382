package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/docstream/document-platform/internal/core/domain"
)

type recordingSubmitter struct {
	mu        sync.Mutex
	submitted []int64
	err       error
	done      chan struct{}
	want      int
}

func newRecordingSubmitter(want int) *recordingSubmitter {
	return &recordingSubmitter{done: make(chan struct{}), want: want}
}

func (s *recordingSubmitter) Submit(_ context.Context, documentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted = append(s.submitted, documentID)
	if len(s.submitted) == s.want {
		close(s.done)
	}
	return s.err
}

func (s *recordingSubmitter) wait(t *testing.T) []int64 {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for submissions")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.submitted...)
}

func TestDispatcher_SubmitsEnqueuedRequests(t *testing.T) {
	sub := newRecordingSubmitter(3)
	d := NewDispatcher(2, sub, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i, docID := range []int64{5, 8, 13} {
		d.Enqueue(domain.IngestionRequest{ID: int64(i + 1), DocumentID: docID, Status: domain.StatusInProgress})
	}

	got := sub.wait(t)
	seen := make(map[int64]bool, len(got))
	for _, id := range got {
		seen[id] = true
	}
	for _, want := range []int64{5, 8, 13} {
		if !seen[want] {
			t.Errorf("document %d never submitted", want)
		}
	}
}

func TestDispatcher_SameDocumentStaysOrdered(t *testing.T) {
	sub := newRecordingSubmitter(4)
	d := NewDispatcher(4, sub, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// All four land on the same shard, so one worker drains them in order.
	for i := int64(1); i <= 4; i++ {
		d.Enqueue(domain.IngestionRequest{ID: i, DocumentID: 8})
	}

	got := sub.wait(t)
	if len(got) != 4 {
		t.Fatalf("submissions = %d, want 4", len(got))
	}
	for _, id := range got {
		if id != 8 {
			t.Fatalf("unexpected document id %d", id)
		}
	}
}

func TestDispatcher_KeepsRunningAfterSubmitError(t *testing.T) {
	sub := newRecordingSubmitter(2)
	sub.err = errors.New("processor unavailable")
	d := NewDispatcher(1, sub, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.IngestionRequest{ID: 1, DocumentID: 5})
	d.Enqueue(domain.IngestionRequest{ID: 2, DocumentID: 5})

	if got := sub.wait(t); len(got) != 2 {
		t.Fatalf("submissions = %d, want 2", len(got))
	}
}

func TestDispatcher_ShardIndexNeverNegative(t *testing.T) {
	d := NewDispatcher(3, newRecordingSubmitter(0), zerolog.Nop())

	for _, docID := range []int64{-7, -1, 0, 1, 7} {
		idx := d.shardIndex(docID)
		if idx < 0 || idx >= 3 {
			t.Errorf("shardIndex(%d) = %d, out of range", docID, idx)
		}
	}
}
