package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSummary_Defaults(t *testing.T) {
	s := NewSummary()

	require.NotEmpty(t, s.ID)
	assert.Equal(t, "sender@example.com", s.From)
	assert.Equal(t, []string{"you@example.com"}, s.To)
	assert.True(t, s.IsNew(), "default summary should be new")
}

func TestNewSummary_UniqueIDs(t *testing.T) {
	a := NewSummary()
	b := NewSummary()

	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewSummary_Options(t *testing.T) {
	date := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	s := NewSummary(
		ID("msg-1"),
		From("ada@analytical.example"),
		To("you@example.com", "dev@lists.example"),
		Cc("archive@example.com"),
		Subject("engine notes"),
		Body("the cards are punched"),
		Date(date),
		Read(),
		Flagged(),
		Tagged(),
	)

	assert.Equal(t, "msg-1", s.ID)
	assert.Equal(t, "ada@analytical.example", s.From)
	assert.Len(t, s.Recipients(), 3)
	assert.Equal(t, "engine notes", s.Subject)
	assert.Equal(t, date, s.Date)
	assert.True(t, s.Read)
	assert.True(t, s.Flagged)
	assert.True(t, s.Tagged)
	assert.False(t, s.IsNew())
}

func TestNewSummary_FlagOptionsCompose(t *testing.T) {
	s := NewSummary(Old(), Replied(), Deleted())

	assert.True(t, s.Old)
	assert.True(t, s.Replied)
	assert.True(t, s.Deleted)
	assert.False(t, s.IsNew(), "old messages are not new")
}
