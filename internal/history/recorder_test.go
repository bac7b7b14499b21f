package history

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"

	"github.com/themobileprof/healthdesk-be/internal/circuitbreaker"
	"github.com/themobileprof/healthdesk-be/internal/db"
)

const testUserID = "11111111-1111-1111-1111-111111111111"

type fakeStore struct {
	saved []*db.Assessment
	err   error
}

func (f *fakeStore) SaveAssessment(_ context.Context, a *db.Assessment) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, a)
	return nil
}

func TestRecordRedactsFreeText(t *testing.T) {
	store := &fakeStore{}
	r := NewRecorder(store, nil, zerolog.Nop())

	a := r.Record(context.Background(), Entry{
		UserID:   testUserID,
		Kind:     KindEmergency,
		Input:    map[string]any{"symptoms": []string{"svenimento"}, "location": "Via Roma 1, tel 333 123 4567"},
		Result:   map[string]any{"is_emergency": true},
		Severity: "immediate",
	})

	if a == nil || len(store.saved) != 1 {
		t.Fatalf("expected one stored assessment, got %v", store.saved)
	}
	if strings.Contains(string(a.Input), "333 123 4567") || !strings.Contains(string(a.Input), "[PHONE]") {
		t.Errorf("input not redacted: %s", a.Input)
	}
	if a.Kind != KindEmergency || a.Severity != "immediate" || a.UserID != testUserID {
		t.Errorf("unexpected assessment %+v", a)
	}
}

func TestRecordSkipsAnonymous(t *testing.T) {
	store := &fakeStore{}
	r := NewRecorder(store, nil, zerolog.Nop())

	if a := r.Record(context.Background(), Entry{Kind: KindRisk, Input: 1, Result: 2}); a != nil {
		t.Errorf("anonymous call should not be stored, got %+v", a)
	}
	if len(store.saved) != 0 {
		t.Errorf("store called for anonymous user")
	}

	var nilRecorder *Recorder
	if a := nilRecorder.Record(context.Background(), Entry{UserID: testUserID}); a != nil {
		t.Error("nil recorder should be a no-op")
	}
}

func TestRecordSwallowsErrorsAndTripsBreaker(t *testing.T) {
	var logs bytes.Buffer
	store := &fakeStore{err: errors.New("db down")}
	breaker := circuitbreaker.New(circuitbreaker.Settings{Name: "history", MaxFailures: 2, ResetTimeout: time.Hour})
	r := NewRecorder(store, breaker, zerolog.New(&logs))

	for i := 0; i < 3; i++ {
		if a := r.Record(context.Background(), Entry{UserID: testUserID, Kind: KindRisk, Input: "x", Result: "y"}); a != nil {
			t.Fatalf("call %d: expected nil on failure", i)
		}
	}

	if breaker.State() != circuitbreaker.StateOpen {
		t.Errorf("breaker state = %s, want open", breaker.State())
	}
	out := logs.String()
	if !strings.Contains(out, "failed to save assessment") || !strings.Contains(out, "assessment dropped") {
		t.Errorf("unexpected logs: %s", out)
	}
	if strings.Contains(out, testUserID) {
		t.Error("raw user id leaked into logs")
	}
}

func TestRecordUnencodableInput(t *testing.T) {
	store := &fakeStore{}
	r := NewRecorder(store, nil, zerolog.Nop())

	if a := r.Record(context.Background(), Entry{UserID: testUserID, Kind: KindRisk, Input: make(chan int)}); a != nil {
		t.Error("expected nil for unencodable input")
	}
	if len(store.saved) != 0 {
		t.Error("store should not be called")
	}
}

func TestRecordThroughDatabase(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectQuery(`INSERT INTO assessments`).
		WithArgs(sqlmock.AnyArg(), testUserID, KindSymptoms, sqlmock.AnyArg(), sqlmock.AnyArg(), "moderata").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	r := NewRecorder(&db.DB{DB: sqlDB}, nil, zerolog.Nop())
	a := r.Record(context.Background(), Entry{
		UserID:   testUserID,
		Kind:     KindSymptoms,
		Input:    map[string]any{"symptoms": []string{"febbre"}},
		Result:   map[string]any{"severity_level": "moderata"},
		Severity: "moderata",
	})
	if a == nil {
		t.Fatal("expected stored assessment")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
