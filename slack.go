package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

func RunSlackBot(cfg Config, db *sql.DB, api *slack.Client) error {
	client := socketmode.New(api)

	go func() {
		for evt := range client.Events {
			switch evt.Type {
			case socketmode.EventTypeSlashCommand:
				client.Ack(*evt.Request)
				cmd, ok := evt.Data.(slack.SlashCommand)
				if !ok {
					continue
				}
				log.Printf("Slash command received: %s from user=%s channel=%s", cmd.Command, cmd.UserID, cmd.ChannelID)
				go handleSlashCommand(api, db, cfg, cmd)
			}
		}
	}()

	log.Println("Slack bot connected via Socket Mode")
	return client.Run()
}

func handleSlashCommand(api *slack.Client, db *sql.DB, cfg Config, cmd slack.SlashCommand) {
	switch cmd.Command {
	case "/moltverify":
		handleVerify(api, db, cfg, cmd)
	case "/moltcheck":
		handleCheck(api, cfg, cmd)
	case "/moltstats":
		handleStats(api, db, cfg, cmd)
	}
}

// handleVerify solves a challenge and submits the answer to Moltbook. One
// submission per verification code, ever — a repeated code is refused before
// anything is solved or sent.
func handleVerify(api *slack.Client, db *sql.DB, cfg Config, cmd slack.SlashCommand) {
	code, challenge, err := parseVerifyPayload(cmd.Text)
	if err != nil {
		postEphemeral(api, cmd, "Usage: /moltverify <verification_code> <challenge text>\n"+
			"Submits the answer to Moltbook exactly once. Use /moltcheck to preview without submitting.")
		return
	}

	v := Verification{ChallengeText: challenge, VerificationCode: code}
	outcome, err := VerifyContent(cfg, db, v, cmd.UserName)
	switch {
	case errors.Is(err, ErrAlreadyAttempted):
		postEphemeral(api, cmd, alreadyAttemptedMessage(db, code))
	case err != nil:
		log.Printf("verify error code=%s user=%s: %v", code, cmd.UserID, err)
		postEphemeral(api, cmd, fmt.Sprintf("Verification failed: %v\nThis code's single attempt is spent; it will not be retried.", err))
	default:
		postEphemeral(api, cmd, formatOutcome(outcome))
	}
}

// handleCheck runs the solver without touching the ledger or the network.
func handleCheck(api *slack.Client, cfg Config, cmd slack.SlashCommand) {
	challenge := strings.TrimSpace(cmd.Text)
	if challenge == "" {
		postEphemeral(api, cmd, "Usage: /moltcheck <challenge text>\nSolves the challenge without submitting anything.")
		return
	}

	answer, ok := SolveChallenge(challenge)
	if !ok && cfg.LLMFallback {
		answer, ok = solveWithLLM(cfg, challenge)
	}
	if !ok {
		postEphemeral(api, cmd, "Could not solve: fewer than two numeric operands found.")
		return
	}
	postEphemeral(api, cmd, fmt.Sprintf("Answer: `%s` (not submitted)", answer))
}

func handleStats(api *slack.Client, db *sql.DB, cfg Config, cmd slack.SlashCommand) {
	since := time.Now().AddDate(0, 0, -7)
	stats, err := GetAttemptStats(db, since)
	if err != nil {
		log.Printf("stats error user=%s: %v", cmd.UserID, err)
		postEphemeral(api, cmd, fmt.Sprintf("Error loading stats: %v", err))
		return
	}
	postEphemeral(api, cmd, formatStats(stats, since, time.Now()))
}

// parseVerifyPayload splits slash command text into the verification code
// (first field) and the challenge text (everything after it).
func parseVerifyPayload(text string) (string, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", "", errors.New("empty payload")
	}
	parts := strings.Fields(text)
	if len(parts) < 2 {
		return "", "", errors.New("payload needs a code and a challenge")
	}
	code := parts[0]
	challenge := strings.TrimSpace(strings.TrimPrefix(text, code))
	return code, challenge, nil
}

func formatOutcome(out VerifyOutcome) string {
	if !out.Solved {
		return "Could not solve the challenge (fewer than two numeric operands). Nothing was submitted; the code is marked attempted."
	}
	if out.Success {
		return fmt.Sprintf("Verified. Answer `%s` accepted by Moltbook.", out.Answer)
	}
	msg := fmt.Sprintf("Answer `%s` was rejected by Moltbook.", out.Answer)
	if out.Message != "" {
		msg += " Response: " + out.Message
	}
	return msg + "\nNot retrying: repeated wrong submissions lead to account suspension."
}

func alreadyAttemptedMessage(db *sql.DB, code string) string {
	msg := fmt.Sprintf("Verification code `%s` was already attempted; Moltbook allows one submission per code.", code)
	rec, err := GetAttempt(db, code)
	if err != nil || rec == nil {
		return msg
	}
	return msg + fmt.Sprintf(" Previous attempt: answer=`%s` success=%v at %s.",
		rec.Answer, rec.Success, rec.AttemptedAt.Format("Jan 2 15:04"))
}

func formatStats(stats AttemptStats, from, to time.Time) string {
	return fmt.Sprintf(
		"Moltbook verification activity %s - %s:\n"+
			"• %d challenges attempted\n"+
			"• %d solved by the heuristic pipeline\n"+
			"• %d answers submitted\n"+
			"• %d accepted by Moltbook",
		from.Format("Jan 2"), to.Format("Jan 2"),
		stats.Total, stats.Solved, stats.Submitted, stats.Succeeded,
	)
}

func postEphemeral(api *slack.Client, cmd slack.SlashCommand, text string) {
	_, err := api.PostEphemeral(cmd.ChannelID, cmd.UserID, slack.MsgOptionText(text, false))
	if err != nil {
		log.Printf("Error posting ephemeral message: %v", err)
	}
}
