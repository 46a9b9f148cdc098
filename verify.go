package main

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
)

// ErrAlreadyAttempted means the ledger already holds a row for this
// verification code. The earlier attempt counts, whatever its outcome.
var ErrAlreadyAttempted = errors.New("verification code already attempted")

type verifyRequest struct {
	VerificationCode string `json:"verification_code"`
	Answer           string `json:"answer"`
}

type verifyResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SubmitAnswer posts one answer to the Moltbook verify endpoint. It is
// called at most once per verification code — a wrong answer must not be
// retried, since repeated wrong submissions get the account suspended.
func SubmitAnswer(cfg Config, code, answer string) (*verifyResponse, error) {
	payload, err := json.Marshal(verifyRequest{VerificationCode: code, Answer: answer})
	if err != nil {
		return nil, fmt.Errorf("encoding verify request: %w", err)
	}

	req, err := http.NewRequest("POST", cfg.MoltbookAPIURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.MoltbookAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := externalHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submitting answer: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("Moltbook API returned %d: %s", resp.StatusCode, string(body))
	}

	var result verifyResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return &result, nil
}

// VerifyContent solves a challenge and submits the answer, strictly once.
// The attempt is recorded in the ledger before the network call, so a crash
// mid-submit still blocks a second attempt for the same code.
func VerifyContent(cfg Config, db *sql.DB, v Verification, requestedBy string) (VerifyOutcome, error) {
	var out VerifyOutcome

	if v.ChallengeText == "" || v.VerificationCode == "" {
		return out, errors.New("verification payload missing challenge or code")
	}

	exists, err := AttemptExists(db, v.VerificationCode)
	if err != nil {
		return out, fmt.Errorf("checking attempt ledger: %w", err)
	}
	if exists {
		return out, ErrAlreadyAttempted
	}

	answer, solved := SolveChallenge(v.ChallengeText)
	if !solved && cfg.LLMFallback {
		answer, solved = solveWithLLM(cfg, v.ChallengeText)
		if solved {
			log.Printf("verify code=%s solved via llm fallback", v.VerificationCode)
		}
	}

	rec := AttemptRecord{
		Code:        v.VerificationCode,
		Challenge:   v.ChallengeText,
		Answer:      answer,
		Solved:      solved,
		RequestedBy: requestedBy,
	}
	if _, err := RecordAttempt(db, rec); err != nil {
		return out, fmt.Errorf("recording attempt: %w", err)
	}

	if !solved {
		log.Printf("verify code=%s unsolvable", v.VerificationCode)
		return out, nil
	}
	out.Answer = answer
	out.Solved = true

	result, err := SubmitAnswer(cfg, v.VerificationCode, answer)
	out.Submitted = true
	if err != nil {
		// One-shot: the attempt is spent even when the submit failed.
		if uerr := UpdateAttemptResult(db, v.VerificationCode, true, false, err.Error()); uerr != nil {
			log.Printf("verify code=%s ledger update error: %v", v.VerificationCode, uerr)
		}
		return out, fmt.Errorf("submitting verification: %w", err)
	}

	out.Success = result.Success
	out.Message = result.Message
	if err := UpdateAttemptResult(db, v.VerificationCode, true, result.Success, result.Message); err != nil {
		log.Printf("verify code=%s ledger update error: %v", v.VerificationCode, err)
	}
	log.Printf("verify code=%s answer=%s success=%v", v.VerificationCode, answer, result.Success)
	return out, nil
}
