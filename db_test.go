package main

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "moltverify-test.db")
	db, err := InitDB(dbPath)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRecordAttemptAndGet(t *testing.T) {
	db := newTestDB(t)

	rec := AttemptRecord{
		Code:        "molt-abc123",
		Challenge:   "3 + 4",
		Answer:      "7.00",
		Solved:      true,
		RequestedBy: "alice",
	}
	id, err := RecordAttempt(db, rec)
	if err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected nonzero attempt id")
	}

	got, err := GetAttempt(db, "molt-abc123")
	if err != nil {
		t.Fatalf("GetAttempt failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected attempt record, got nil")
	}
	if got.Answer != "7.00" || !got.Solved || got.Submitted || got.RequestedBy != "alice" {
		t.Fatalf("unexpected record: %+v", got)
	}

	missing, err := GetAttempt(db, "molt-nope")
	if err != nil {
		t.Fatalf("GetAttempt(missing) failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing code, got %+v", missing)
	}
}

func TestRecordAttemptRejectsDuplicateCode(t *testing.T) {
	db := newTestDB(t)

	rec := AttemptRecord{Code: "molt-dup", Challenge: "3 + 4", Answer: "7.00", Solved: true}
	if _, err := RecordAttempt(db, rec); err != nil {
		t.Fatalf("first RecordAttempt failed: %v", err)
	}
	if _, err := RecordAttempt(db, rec); err == nil {
		t.Fatal("expected duplicate verification_code insert to fail")
	}

	exists, err := AttemptExists(db, "molt-dup")
	if err != nil {
		t.Fatalf("AttemptExists failed: %v", err)
	}
	if !exists {
		t.Fatal("expected AttemptExists to report true")
	}
}

func TestUpdateAttemptResult(t *testing.T) {
	db := newTestDB(t)

	rec := AttemptRecord{Code: "molt-upd", Challenge: "5 * 5", Answer: "25.00", Solved: true}
	if _, err := RecordAttempt(db, rec); err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}
	if err := UpdateAttemptResult(db, "molt-upd", true, true, "verified"); err != nil {
		t.Fatalf("UpdateAttemptResult failed: %v", err)
	}

	got, err := GetAttempt(db, "molt-upd")
	if err != nil || got == nil {
		t.Fatalf("GetAttempt failed: %v", err)
	}
	if !got.Submitted || !got.Success || got.Message != "verified" {
		t.Fatalf("unexpected record after update: %+v", got)
	}
}

func TestGetAttemptStats(t *testing.T) {
	db := newTestDB(t)

	records := []AttemptRecord{
		{Code: "s1", Challenge: "3 + 4", Answer: "7.00", Solved: true, Submitted: true, Success: true},
		{Code: "s2", Challenge: "5 * 5", Answer: "25.00", Solved: true, Submitted: true, Success: false},
		{Code: "s3", Challenge: "no numbers here", Solved: false},
	}
	for _, rec := range records {
		if _, err := RecordAttempt(db, rec); err != nil {
			t.Fatalf("RecordAttempt(%s) failed: %v", rec.Code, err)
		}
	}

	stats, err := GetAttemptStats(db, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("GetAttemptStats failed: %v", err)
	}
	if stats.Total != 3 || stats.Solved != 2 || stats.Submitted != 2 || stats.Succeeded != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	empty, err := GetAttemptStats(db, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("GetAttemptStats(future) failed: %v", err)
	}
	if empty.Total != 0 {
		t.Fatalf("expected empty window, got %+v", empty)
	}
}
