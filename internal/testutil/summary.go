// Package testutil provides helpers for building message fixtures in tests.
package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/missive/internal/mail"
)

// NewSummary builds a message summary with sensible defaults, configured
// through options.
func NewSummary(opts ...SummaryOption) mail.Summary {
	s := defaultSummary()
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// defaultSummary returns an unread message from a generic sender.
func defaultSummary() mail.Summary {
	return mail.Summary{
		ID:      uuid.NewString(),
		From:    "sender@example.com",
		To:      []string{"you@example.com"},
		Subject: "a subject line",
		Body:    "the message body",
		Date:    time.Now(),
	}
}

// SummaryOption configures a summary during fixture setup.
type SummaryOption func(*mail.Summary)

// ID sets the message ID.
func ID(id string) SummaryOption {
	return func(s *mail.Summary) { s.ID = id }
}

// From sets the sender address.
func From(from string) SummaryOption {
	return func(s *mail.Summary) { s.From = from }
}

// To sets the recipient list.
func To(to ...string) SummaryOption {
	return func(s *mail.Summary) { s.To = to }
}

// Cc sets the carbon-copy list.
func Cc(cc ...string) SummaryOption {
	return func(s *mail.Summary) { s.Cc = cc }
}

// Subject sets the subject line.
func Subject(subject string) SummaryOption {
	return func(s *mail.Summary) { s.Subject = subject }
}

// Body sets the message body.
func Body(body string) SummaryOption {
	return func(s *mail.Summary) { s.Body = body }
}

// Date sets the message date.
func Date(d time.Time) SummaryOption {
	return func(s *mail.Summary) { s.Date = d }
}

// Read marks the message read.
func Read() SummaryOption {
	return func(s *mail.Summary) { s.Read = true }
}

// Old marks the message old (unread but aged out of new).
func Old() SummaryOption {
	return func(s *mail.Summary) { s.Old = true }
}

// Flagged marks the message flagged.
func Flagged() SummaryOption {
	return func(s *mail.Summary) { s.Flagged = true }
}

// Replied marks the message replied-to.
func Replied() SummaryOption {
	return func(s *mail.Summary) { s.Replied = true }
}

// Deleted marks the message deleted.
func Deleted() SummaryOption {
	return func(s *mail.Summary) { s.Deleted = true }
}

// Tagged marks the message tagged.
func Tagged() SummaryOption {
	return func(s *mail.Summary) { s.Tagged = true }
}
