package main

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS verification_attempts (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		verification_code TEXT NOT NULL UNIQUE,
		challenge         TEXT NOT NULL,
		answer            TEXT DEFAULT '',
		solved            INTEGER NOT NULL DEFAULT 0,
		submitted         INTEGER NOT NULL DEFAULT 0,
		success           INTEGER NOT NULL DEFAULT 0,
		message           TEXT DEFAULT '',
		requested_by      TEXT DEFAULT '',
		attempted_at      DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_attempts_attempted_at ON verification_attempts(attempted_at);
	`
	_, err = db.Exec(schema)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// RecordAttempt inserts a ledger row for a verification code. The UNIQUE
// constraint on verification_code is the one-shot guarantee: a second insert
// for the same code fails.
func RecordAttempt(db *sql.DB, rec AttemptRecord) (int64, error) {
	res, err := db.Exec(
		`INSERT INTO verification_attempts (verification_code, challenge, answer, solved, submitted, success, message, requested_by, attempted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Code, rec.Challenge, rec.Answer, rec.Solved, rec.Submitted,
		rec.Success, rec.Message, rec.RequestedBy, time.Now().UTC(),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func AttemptExists(db *sql.DB, code string) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM verification_attempts WHERE verification_code = ?", code).Scan(&count)
	return count > 0, err
}

// UpdateAttemptResult records the submission outcome on an existing row.
func UpdateAttemptResult(db *sql.DB, code string, submitted, success bool, message string) error {
	_, err := db.Exec(
		`UPDATE verification_attempts SET submitted = ?, success = ?, message = ? WHERE verification_code = ?`,
		submitted, success, message, code,
	)
	return err
}

func GetAttempt(db *sql.DB, code string) (*AttemptRecord, error) {
	row := db.QueryRow(
		`SELECT id, verification_code, challenge, answer, solved, submitted, success, message, requested_by, attempted_at
		 FROM verification_attempts WHERE verification_code = ?`, code)

	var rec AttemptRecord
	err := row.Scan(&rec.ID, &rec.Code, &rec.Challenge, &rec.Answer, &rec.Solved,
		&rec.Submitted, &rec.Success, &rec.Message, &rec.RequestedBy, &rec.AttemptedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetAttemptStats counts ledger activity in [since, now].
func GetAttemptStats(db *sql.DB, since time.Time) (AttemptStats, error) {
	var stats AttemptStats
	err := db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(solved), 0),
		        COALESCE(SUM(submitted), 0),
		        COALESCE(SUM(success), 0)
		 FROM verification_attempts WHERE attempted_at >= ?`, since.UTC(),
	).Scan(&stats.Total, &stats.Solved, &stats.Submitted, &stats.Succeeded)
	return stats, err
}
