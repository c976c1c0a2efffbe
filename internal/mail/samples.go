package mail

import (
	"time"

	"github.com/google/uuid"
)

// SampleSummaries returns a small mailbox used by the playground demo
// pane so index rules have realistic content to match against.
func SampleSummaries() []Summary {
	base := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)

	return []Summary{
		{
			ID:      uuid.NewString(),
			From:    "Ada Lovelace <ada@analytical.example>",
			To:      []string{"you@example.com"},
			Subject: "Engine notes for next week",
			Body:    "The cards for the next run are punched and ready.",
			Date:    base,
		},
		{
			ID:      uuid.NewString(),
			From:    "build-bot@ci.example",
			To:      []string{"dev@lists.example"},
			Cc:      []string{"you@example.com"},
			Subject: "[ci] nightly build failed",
			Body:    "Job #4812 exited with status 2. See the attached log.",
			Date:    base.Add(2 * time.Hour),
			Flagged: true,
		},
		{
			ID:      uuid.NewString(),
			From:    "Grace Hopper <grace@navy.example>",
			To:      []string{"you@example.com"},
			Subject: "Re: compiler talk",
			Body:    "A ship in port is safe, but that is not what ships are built for.",
			Date:    base.Add(26 * time.Hour),
			Read:    true,
			Replied: true,
		},
		{
			ID:      uuid.NewString(),
			From:    "newsletter@weekly.example",
			To:      []string{"subscribers@weekly.example"},
			Subject: "This week in mail clients",
			Body:    "Issue 128: colour schemes people actually use.",
			Date:    base.Add(-40 * time.Hour),
			Old:     true,
		},
		{
			ID:      uuid.NewString(),
			From:    "Ken Thompson <ken@research.example>",
			To:      []string{"you@example.com"},
			Subject: "ed is the standard editor",
			Body:    "When in doubt, pipe it through sed.",
			Date:    base.Add(3 * time.Hour),
			Tagged:  true,
		},
		{
			ID:      uuid.NewString(),
			From:    "spam@lottery.example",
			To:      []string{"you@example.com"},
			Subject: "YOU HAVE WON!!!",
			Body:    "Claim your prize within 24 hours.",
			Date:    base.Add(-3 * time.Hour),
			Read:    true,
			Deleted: true,
		},
	}
}
