package main

import "time"

// Verification is the challenge payload handed out by the Moltbook API when
// an agent posts content.
type Verification struct {
	ChallengeText    string `json:"challenge_text"`
	VerificationCode string `json:"verification_code"`
}

// AttemptRecord is one row of the submission ledger. Every verification code
// gets at most one row, which is what makes submission one-shot across
// process restarts.
type AttemptRecord struct {
	ID          int64
	Code        string
	Challenge   string
	Answer      string
	Solved      bool
	Submitted   bool
	Success     bool
	Message     string
	RequestedBy string
	AttemptedAt time.Time
}

// AttemptStats summarizes ledger activity over a window, for digests and
// the /moltstats command.
type AttemptStats struct {
	Total     int
	Solved    int
	Submitted int
	Succeeded int
}

// VerifyOutcome reports what a single verification attempt did, in pipeline
// order: solve, record, submit.
type VerifyOutcome struct {
	Answer    string
	Solved    bool
	Submitted bool
	Success   bool
	Message   string
}
