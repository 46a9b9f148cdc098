package main

import (
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/slack-go/slack"
)

// StartDigestScheduler posts a periodic summary of verification activity to
// the verify channel. The schedule is a standard 5-field cron expression
// (minute hour day-of-month month day-of-week).
// Examples: "0 9 * * *" (daily 9am), "0 9 * * 1" (Mondays 9am).
func StartDigestScheduler(cfg Config, db *sql.DB, api *slack.Client) {
	schedule := strings.TrimSpace(cfg.DigestSchedule)
	if schedule == "" {
		log.Println("Digest disabled (digest_schedule not set)")
		return
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		log.Printf("Invalid digest_schedule '%s': %v — digest disabled", schedule, err)
		return
	}

	log.Printf("Digest scheduled (cron: %s) to channel %s", schedule, cfg.VerifyChannelID)

	go func() {
		prev := time.Now()
		for {
			now := time.Now()
			next := sched.Next(now)
			wait := next.Sub(now)
			log.Printf("Next digest at %s (in %s)", next.Format("Mon Jan 2 15:04"), wait.Round(time.Minute))

			time.Sleep(wait)

			now = time.Now()
			stats, err := GetAttemptStats(db, prev)
			if err != nil {
				log.Printf("Digest stats error: %v", err)
				continue
			}
			if stats.Total == 0 {
				log.Println("Digest skipped: no verification activity")
				prev = now
				continue
			}

			msg := formatStats(stats, prev, now)
			_, _, err = api.PostMessage(cfg.VerifyChannelID, slack.MsgOptionText(msg, false))
			if err != nil {
				log.Printf("Digest post error: %v", err)
			} else {
				log.Printf("Digest posted: %d attempts since %s", stats.Total, prev.Format("Jan 2 15:04"))
			}
			prev = now
		}
	}()
}
