package domain

import (
	"errors"
	"time"
)

// IngestionStatus represents the lifecycle state of an ingestion request.
// The string values are an external contract shared with the processor and
// API consumers; do not rename them.
type IngestionStatus string

const (
	StatusPending    IngestionStatus = "Pending"
	StatusInProgress IngestionStatus = "InProgress"
	StatusCompleted  IngestionStatus = "Completed"
	StatusFailed     IngestionStatus = "Failed"
	StatusCancelled  IngestionStatus = "Cancelled"
)

// ErrInvalidArgument marks caller-contract violations on the ingestion
// surface (bad or missing document id). Unlike the auth result envelope,
// these are returned as errors by design.
var ErrInvalidArgument = errors.New("invalid argument")

var ErrIngestionNotFound = errors.New("ingestion request not found")

// ingestionStatuses is the closed set of valid statuses. There is no
// transition graph: any status may overwrite any other. Whether that should
// be constrained is a product question, not enforced here.
var ingestionStatuses = map[IngestionStatus]struct{}{
	StatusPending:    {},
	StatusInProgress: {},
	StatusCompleted:  {},
	StatusFailed:     {},
	StatusCancelled:  {},
}

// IsValidStatus reports whether s is a member of the status enumeration.
func IsValidStatus(s IngestionStatus) bool {
	_, ok := ingestionStatuses[s]
	return ok
}

// IngestionRequest tracks the processing lifecycle of one document.
// RequestedAt is set once at creation and never mutated afterwards.
type IngestionRequest struct {
	ID          int64           `json:"id" bson:"_id"`
	DocumentID  int64           `json:"document_id" bson:"document_id"`
	Status      IngestionStatus `json:"status" bson:"status"`
	RequestedAt time.Time       `json:"requested_at" bson:"requested_at"`
}
