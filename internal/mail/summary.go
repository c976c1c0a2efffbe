// Package mail holds the message summary model: the per-message data the
// index regions render and the search expressions evaluate.
package mail

import (
	"strings"
	"time"
)

// Summary is one message as the index sees it. Body carries enough text
// for content patterns to match; full MIME handling lives elsewhere.
type Summary struct {
	ID      string
	From    string
	To      []string
	Cc      []string
	Subject string
	Body    string
	Date    time.Time

	Read    bool
	Old     bool
	Flagged bool
	Replied bool
	Deleted bool
	Tagged  bool
}

// IsNew reports whether the message is new: never read and not aged into
// old by a previous session.
func (s Summary) IsNew() bool {
	return !s.Read && !s.Old
}

// Recipients returns To and Cc joined for recipient matching.
func (s Summary) Recipients() []string {
	out := make([]string, 0, len(s.To)+len(s.Cc))
	out = append(out, s.To...)
	out = append(out, s.Cc...)
	return out
}

// StatusGlyphs renders the index flags column: N new, O old, r replied,
// ! flagged, D deleted, * tagged. Read messages with no other state show
// blank.
func (s Summary) StatusGlyphs() string {
	var b strings.Builder
	switch {
	case s.IsNew():
		b.WriteByte('N')
	case s.Old:
		b.WriteByte('O')
	case s.Replied:
		b.WriteByte('r')
	default:
		b.WriteByte(' ')
	}
	if s.Flagged {
		b.WriteByte('!')
	}
	if s.Deleted {
		b.WriteByte('D')
	}
	if s.Tagged {
		b.WriteByte('*')
	}
	return b.String()
}
