package playground

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/missive/internal/rules"
	"github.com/zjrosen/missive/internal/ui/styles"
)

// Index demo column widths.
const (
	flagsColWidth  = 4
	dateColWidth   = 6
	authorColWidth = 22
)

// bodySample is the message text shown in the body demo. It carries
// URLs, addresses and a signature so typical body regexes have
// something to hit.
const bodySample = `Thanks for the review pass yesterday.

The release notes are up at https://missive.example/notes/1.4 and the
old tracker export moved to ftp://files.example/drop. Ping me if the
nightly from ci@builds.example still fails the signature check, the
fix landed in commit 4812ec0 this morning.

Quoting the earlier thread:

> The cards for the next run are punched and ready.
> We should colour the failures red before the demo.

--
Ada Lovelace
Analytical Engines, testing dept.`

// headerSample is the header block shown in the header demo.
var headerSample = []string{
	"From: Ada Lovelace <ada@analytical.example>",
	"To: you@example.com",
	"Cc: dev@lists.example",
	"Subject: Engine notes for next week",
	"Date: Thu, 20 Aug 2026 09:30:00 +0000",
	"Message-ID: <4812.cards@analytical.example>",
	"X-Mailer: missive/0.4",
}

// attachSample is the attachment header block for the attach_headers
// demo.
var attachSample = []string{
	"[-- Attachment #1: run-4812.log --]",
	"[-- Type: text/plain, Encoding: 7bit, Size: 12K --]",
	"",
	"[-- Attachment #2: punch-cards.pdf --]",
	"[-- Type: application/pdf, Encoding: base64, Size: 1.2M --]",
}

// renderDemo renders sample content for a region, styled by the
// engine's current rules.
func (m Model) renderDemo(region rules.Region, width int) string {
	var content string
	switch {
	case region.IsIndexKind():
		content = m.renderIndexDemo(region, width)
	case region == rules.RegionBody:
		content = m.renderBodyDemo(width)
	case region == rules.RegionHeader:
		content = m.renderLinesDemo(region, headerSample, width)
	case region == rules.RegionAttachHeaders:
		content = m.renderLinesDemo(region, attachSample, width)
	case region == rules.RegionStatus:
		content = m.renderStatusDemo(width)
	}

	if m.regionRuleCount(region) == 0 {
		hint := lipgloss.NewStyle().
			Foreground(styles.TextPlaceholderColor).
			Render("no rules for this region; edit the rc file and press r")
		content += "\n\n " + hint
	}

	return content
}

// renderIndexDemo renders the sample mailbox as index lines. The column
// the region governs takes the style of the message's first matching
// rule; index and index_tag rules colour the whole line.
func (m Model) renderIndexDemo(region rules.Region, width int) string {
	var lines []string
	for i, msg := range m.samples {
		match, ok := m.cache.Resolve(m.ctx, region, msg)

		flags := runewidth.FillRight(runewidth.Truncate(msg.StatusGlyphs(), flagsColWidth, ""), flagsColWidth)
		date := runewidth.FillRight(msg.Date.Format("Jan 02"), dateColWidth)
		author := runewidth.FillRight(runewidth.Truncate(fromName(msg.From), authorColWidth, "…"), authorColWidth)

		// 3 for the number column, 3 for the separators.
		subjectWidth := max(width-3-flagsColWidth-dateColWidth-authorColWidth-3, 8)
		subject := runewidth.Truncate(msg.Subject, subjectWidth, "…")

		if ok {
			switch region {
			case rules.RegionIndexAuthor:
				author = match.Style.Render(author)
			case rules.RegionIndexFlags:
				flags = match.Style.Render(flags)
			case rules.RegionIndexSubject:
				subject = match.Style.Render(subject)
			}
		}

		line := fmt.Sprintf("%2d %s %s %s %s", i+1, flags, date, author, subject)
		if ok && (region == rules.RegionIndex || region == rules.RegionIndexTag) {
			line = match.Style.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderBodyDemo word-wraps the sample body and styles each display
// line's first matching span.
func (m Model) renderBodyDemo(width int) string {
	wrapped := wordwrap.String(bodySample, max(width-1, 16))
	var out []string
	for _, line := range strings.Split(wrapped, "\n") {
		if match, ok := m.engine.Resolve(rules.RegionBody, line); ok {
			line = styleSpan(line, match)
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// renderLinesDemo styles a fixed block of sample lines, one resolve per
// line, used by the header and attach_headers demos.
func (m Model) renderLinesDemo(region rules.Region, sample []string, width int) string {
	out := make([]string, 0, len(sample))
	for _, line := range sample {
		if match, ok := m.engine.Resolve(region, line); ok {
			line = styleSpan(line, match)
		}
		out = append(out, styles.Truncate(line, width))
	}
	return strings.Join(out, "\n")
}

// renderStatusDemo renders a few status-bar lines built from the sample
// mailbox, so counters like Msgs: and New: carry real numbers.
func (m Model) renderStatusDemo(width int) string {
	var newCount, delCount int
	for _, msg := range m.samples {
		if msg.IsNew() {
			newCount++
		}
		if msg.Deleted {
			delCount++
		}
	}

	samples := []string{
		fmt.Sprintf("-- missive: =inbox [Msgs:%d New:%d Del:%d] (date)", len(m.samples), newCount, delCount),
		"-- missive: =lists/dev [Msgs:128 New:0] (thread)",
		"-- missive: =archive [Msgs:2041 Old:2041] (date)",
	}

	out := make([]string, 0, len(samples))
	for _, line := range samples {
		if match, ok := m.engine.Resolve(rules.RegionStatus, line); ok {
			line = styleSpan(line, match)
		}
		out = append(out, styles.Truncate(line, width))
	}
	return strings.Join(out, "\n")
}

// styleSpan applies a match's style to its byte span within line.
// Message matches carry no span and are styled whole at the call site.
func styleSpan(line string, match rules.Match) string {
	if match.End <= match.Start || match.End > len(line) {
		return line
	}
	return line[:match.Start] + match.Style.Render(line[match.Start:match.End]) + line[match.End:]
}

// fromName trims the address part for the author column.
func fromName(from string) string {
	if i := strings.IndexByte(from, '<'); i > 0 {
		return strings.TrimSpace(from[:i])
	}
	return from
}
