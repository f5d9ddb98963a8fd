// Package audit implements the best-effort audit sink. Entries flow through
// a buffered channel into a single writer goroutine; a full buffer or a
// storage failure drops the entry with a local log line and never blocks or
// fails the request that produced it.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/api/metrics"
	"github.com/Trungtrucpixel/vcareglobal-sub001/internal/core/domain"
)

const (
	channelBuffer = 256
	writeTimeout  = 5 * time.Second
)

// Store is the persistence half of the sink.
type Store interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
}

// Recorder satisfies ports.AuditSink.
type Recorder struct {
	store   Store
	entries chan domain.AuditEntry
	log     zerolog.Logger
}

func NewRecorder(store Store, log zerolog.Logger) *Recorder {
	return &Recorder{
		store:   store,
		entries: make(chan domain.AuditEntry, channelBuffer),
		log:     log,
	}
}

// Start launches the writer goroutine. It stops when ctx is cancelled.
func (r *Recorder) Start(ctx context.Context) {
	go r.run(ctx)
}

// Record enqueues an entry without blocking. The request context is
// deliberately not used for the write: the request finishing must not cancel
// the audit write behind it.
func (r *Recorder) Record(_ context.Context, entry domain.AuditEntry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	select {
	case r.entries <- entry:
	default:
		metrics.AuditDroppedTotal.Inc()
		r.log.Warn().
			Str("action", entry.Action).
			Str("user_id", entry.UserID).
			Msg("audit buffer full, entry dropped")
	}
}

func (r *Recorder) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry := <-r.entries:
			writeCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			err := r.store.Insert(writeCtx, entry)
			cancel()
			if err != nil {
				metrics.AuditDroppedTotal.Inc()
				r.log.Error().Err(err).
					Str("action", entry.Action).
					Str("user_id", entry.UserID).
					Msg("audit write failed, entry dropped")
			}
		}
	}
}
