package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/themobileprof/healthdesk-be/internal/circuitbreaker"
	"github.com/themobileprof/healthdesk-be/internal/db"
	"github.com/themobileprof/healthdesk-be/internal/privacy"
)

// Assessment kinds, one per engine operation
const (
	KindSymptoms     = "symptoms"
	KindEmergency    = "emergency"
	KindSeverity     = "severity"
	KindDiagnosis    = "diagnosis"
	KindInteractions = "interactions"
	KindMetrics      = "metrics"
	KindRisk         = "risk"
)

const saveTimeout = 3 * time.Second

// Store is the persistence the recorder needs
type Store interface {
	SaveAssessment(ctx context.Context, a *db.Assessment) error
}

// Entry is one engine call to remember
type Entry struct {
	UserID   string
	Kind     string
	Input    any
	Result   any
	Severity string
}

// Recorder stores engine results for signed-in users. Failures are logged
// and swallowed: a triage answer must never fail because history is down.
type Recorder struct {
	store   Store
	breaker *circuitbreaker.CircuitBreaker
	log     zerolog.Logger
}

// NewRecorder creates a recorder; breaker may be nil
func NewRecorder(store Store, breaker *circuitbreaker.CircuitBreaker, log zerolog.Logger) *Recorder {
	return &Recorder{
		store:   store,
		breaker: breaker,
		log:     log.With().Str("component", "history").Logger(),
	}
}

// Record saves e and returns the stored assessment, or nil when nothing was stored
func (r *Recorder) Record(ctx context.Context, e Entry) *db.Assessment {
	if r == nil || r.store == nil || e.UserID == "" {
		return nil
	}

	a, err := buildAssessment(e)
	if err != nil {
		r.log.Error().Err(err).Str("kind", e.Kind).Msg("failed to encode assessment")
		return nil
	}

	// the request context may be cancelled as soon as the response is written
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	save := func(ctx context.Context) error { return r.store.SaveAssessment(ctx, a) }
	if r.breaker != nil {
		err = r.breaker.Execute(ctx, save)
	} else {
		err = save(ctx)
	}

	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen), errors.Is(err, circuitbreaker.ErrTooManyRequests):
		r.log.Warn().Str("kind", e.Kind).Str("user", privacy.UserRef(e.UserID)).Msg("history unavailable, assessment dropped")
		return nil
	case err != nil:
		r.log.Error().Err(err).Str("kind", e.Kind).Str("user", privacy.UserRef(e.UserID)).Msg("failed to save assessment")
		return nil
	}

	r.log.Debug().Str("kind", e.Kind).Str("assessment_id", a.ID.String()).Msg("assessment recorded")
	return a
}

func buildAssessment(e Entry) (*db.Assessment, error) {
	input, err := encodeRedacted(e.Input)
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	result, err := encodeRedacted(e.Result)
	if err != nil {
		return nil, fmt.Errorf("result: %w", err)
	}
	return &db.Assessment{
		UserID:   e.UserID,
		Kind:     e.Kind,
		Input:    input,
		Result:   result,
		Severity: e.Severity,
	}, nil
}

func encodeRedacted(v any) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return privacy.RedactJSON(raw)
}
