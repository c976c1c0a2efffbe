// Package playground implements the colour-rule preview TUI: a region
// sidebar on the left, sample mail content rendered through the rule
// engine on the right, and an optional table of the effective rules.
package playground

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/missive/internal/command"
	"github.com/zjrosen/missive/internal/keys"
	"github.com/zjrosen/missive/internal/mail"
	"github.com/zjrosen/missive/internal/pubsub"
	"github.com/zjrosen/missive/internal/rules"
	"github.com/zjrosen/missive/internal/stylecache"
	"github.com/zjrosen/missive/internal/ui/help"
	"github.com/zjrosen/missive/internal/ui/modal"
	"github.com/zjrosen/missive/internal/ui/styles"
)

// Config wires the playground's collaborators. Engine, Cache and
// Applier are required; the brokers are optional and enable live
// refresh when present.
type Config struct {
	Engine  *rules.Engine
	Cache   *stylecache.Cache
	Applier *command.Applier
	RcPath  string

	// RuleEvents carries the engine's style-set changes.
	RuleEvents *pubsub.Broker[rules.Region]
	// RcEvents announces rc file applications.
	RcEvents *pubsub.Broker[string]

	// MarkdownStyle selects the glamour style of the help reference.
	MarkdownStyle string
	ShowTable     bool
	ShowStatus    bool
	// MouseZones makes the region sidebar clickable.
	MouseZones bool

	// Ctx bounds the broker subscriptions. Nil means Background.
	Ctx context.Context
}

// RcChangedMsg asks the playground to reload the rc file. The watcher
// bridge sends it through Program.Send when the file changes on disk.
type RcChangedMsg struct{}

// reloadDoneMsg carries the outcome of an rc reload back into Update.
type reloadDoneMsg struct {
	result *command.Result
	err    error
}

// Model holds the playground state.
type Model struct {
	engine  *rules.Engine
	cache   *stylecache.Cache
	applier *command.Applier
	rcPath  string
	ctx     context.Context

	ruleEvents *pubsub.Listener[rules.Region]
	rcEvents   *pubsub.Listener[string]

	keys keys.KeyMap
	help help.Model

	regions  []rules.Region
	samples  []mail.Summary
	selected int

	showHelp   bool
	showTable  bool
	yamlDump   bool
	showStatus bool
	mouseZones bool
	flash      string

	// Quit confirmation modal
	quitModal *modal.Model

	// Dimensions
	width    int
	height   int
	quitting bool
}

// New creates a playground model.
func New(cfg Config) Model {
	ctx := cfg.Ctx
	if ctx == nil {
		ctx = context.Background()
	}

	m := Model{
		engine:     cfg.Engine,
		cache:      cfg.Cache,
		applier:    cfg.Applier,
		rcPath:     cfg.RcPath,
		ctx:        ctx,
		keys:       keys.DefaultKeyMap(),
		help:       help.New(cfg.MarkdownStyle),
		regions:    rules.PatternRegions(),
		samples:    mail.SampleSummaries(),
		showTable:  cfg.ShowTable,
		showStatus: cfg.ShowStatus,
		mouseZones: cfg.MouseZones,
	}

	if cfg.RuleEvents != nil {
		m.ruleEvents = pubsub.NewListener(ctx, cfg.RuleEvents)
	}
	if cfg.RcEvents != nil {
		m.rcEvents = pubsub.NewListener(ctx, cfg.RcEvents)
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.ruleEvents != nil {
		cmds = append(cmds, m.ruleEvents.Next())
	}
	if m.rcEvents != nil {
		cmds = append(cmds, m.rcEvents.Next())
	}
	if m.mouseZones {
		cmds = append(cmds, tea.EnableMouseCellMotion)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help = m.help.SetSize(msg.Width, msg.Height)
		if m.quitModal != nil {
			m.quitModal.SetSize(msg.Width, msg.Height)
		}
		return m, nil

	case pubsub.Event[rules.Region]:
		// Styles changed under us; the next View picks them up.
		if m.ruleEvents == nil {
			return m, nil
		}
		return m, m.ruleEvents.Next()

	case pubsub.Event[string]:
		if msg.Type == pubsub.RcAppliedEvent {
			m.flash = "rules loaded from " + msg.Payload
		}
		if m.rcEvents == nil {
			return m, nil
		}
		return m, m.rcEvents.Next()

	case RcChangedMsg:
		m.flash = "rc file changed, reloading"
		return m, m.reloadCmd()

	case reloadDoneMsg:
		m.flash = reloadFlash(msg)
		return m, nil

	case modal.SubmitMsg:
		// User confirmed quit
		if m.quitModal != nil {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case modal.CancelMsg:
		// User cancelled quit
		m.quitModal = nil
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)
	}

	return m, nil
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always handled first - quit immediately if modal open, else confirm
	if msg.String() == "ctrl+c" {
		if m.quitModal != nil {
			m.quitting = true
			return m, tea.Quit
		}
		return m.openQuitModal()
	}

	// If quit modal is showing, forward to it
	if m.quitModal != nil {
		newModal, cmd := m.quitModal.Update(msg)
		m.quitModal = &newModal
		return m, cmd
	}

	// Help overlay swallows everything except its close keys
	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.openQuitModal()

	case key.Matches(msg, m.keys.Up):
		m.selected--
		if m.selected < 0 {
			m.selected = len(m.regions) - 1 // Wrap to bottom
		}

	case key.Matches(msg, m.keys.Down):
		m.selected++
		if m.selected >= len(m.regions) {
			m.selected = 0 // Wrap to top
		}

	case key.Matches(msg, m.keys.Reload):
		if m.rcPath == "" {
			m.flash = "no rc file configured"
			return m, nil
		}
		m.flash = "reloading " + m.rcPath
		return m, m.reloadCmd()

	case key.Matches(msg, m.keys.ToggleTable):
		m.showTable = !m.showTable

	case key.Matches(msg, m.keys.ToggleYAML):
		m.yamlDump = !m.yamlDump
		if m.yamlDump {
			m.showTable = true
		}

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.ToggleStatus):
		m.showStatus = !m.showStatus

	case key.Matches(msg, m.keys.Escape):
		if m.yamlDump {
			m.yamlDump = false
		} else {
			m.flash = ""
		}
	}

	return m, nil
}

// handleMouseMsg selects a region when its sidebar line is clicked.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouseZones || m.quitModal != nil || m.showHelp {
		return m, nil
	}

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
		for i, region := range m.regions {
			if z := zone.Get(regionZoneID(region)); z != nil && z.InBounds(msg) {
				m.selected = i
				return m, nil
			}
		}
	}

	return m, nil
}

// openQuitModal shows the quit confirmation.
func (m Model) openQuitModal() (tea.Model, tea.Cmd) {
	mdl := modal.New(modal.Config{
		Title:          "Quit Playground",
		Message:        "Exit the colour playground?",
		ConfirmVariant: modal.ButtonDanger,
	})
	mdl.SetSize(m.width, m.height)
	m.quitModal = &mdl
	return m, mdl.Init()
}

// reloadCmd clears every region and reapplies the rc file, so lines
// removed from the file disappear instead of lingering from the
// previous load.
func (m Model) reloadCmd() tea.Cmd {
	engine, applier, ctx, path := m.engine, m.applier, m.ctx, m.rcPath
	return func() tea.Msg {
		for _, region := range rules.PatternRegions() {
			_ = engine.Clear(region)
		}
		result, err := applier.ApplyFile(ctx, path)
		return reloadDoneMsg{result: result, err: err}
	}
}

// reloadFlash folds a reload outcome into one status-bar line.
func reloadFlash(msg reloadDoneMsg) string {
	if msg.err != nil {
		return msg.err.Error()
	}
	if !msg.result.Ok() {
		return fmt.Sprintf("%d rules applied, %d lines rejected", msg.result.Applied, len(msg.result.Errors))
	}
	return fmt.Sprintf("%d rules applied", msg.result.Applied)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return ""
	}

	content := m.renderMain()

	// Overlays draw on top of the composed view; the quit modal wins.
	if m.quitModal != nil {
		content = m.quitModal.Overlay(content)
	} else if m.showHelp {
		content = m.help.Overlay(content)
	}

	if m.mouseZones {
		return zone.Scan(content)
	}
	return content
}

// renderMain renders the sidebar, demo pane and optional rule table.
func (m Model) renderMain() string {
	sidebarWidth := m.sidebarWidth()
	gap := 2
	contentHeight := m.height
	if m.showStatus {
		contentHeight--
	}
	rightWidth := max(m.width-sidebarWidth-gap, 20)

	sidebar := styles.TitledPane(m.renderSidebar(), "Regions", sidebarWidth, contentHeight, true)

	region := m.regions[m.selected]

	var right string
	if m.showTable {
		tableHeight := max(contentHeight*2/5, 5)
		demoHeight := max(contentHeight-tableHeight, 5)
		tableHeight = contentHeight - demoHeight

		title := "Rules"
		body := m.renderRuleTable(rightWidth-2, tableHeight-2)
		if m.yamlDump {
			title = "Rules (yaml)"
			body = m.renderRuleYAML(rightWidth-2, tableHeight-2)
		}

		demo := styles.TitledPane(m.renderDemo(region, rightWidth-2), region.String(), rightWidth, demoHeight, false)
		table := styles.TitledPane(body, title, rightWidth, tableHeight, false)
		right = lipgloss.JoinVertical(lipgloss.Left, demo, table)
	} else {
		right = styles.TitledPane(m.renderDemo(region, rightWidth-2), region.String(), rightWidth, contentHeight, false)
	}

	gapStr := strings.Repeat(" ", gap)
	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, gapStr, right)

	if !m.showStatus {
		return main
	}
	return main + "\n" + m.renderStatusBar()
}

// renderStatusBar renders the one-line footer: flash or rc path on the
// left, key hints on the right.
func (m Model) renderStatusBar() string {
	var hints []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	right := strings.Join(hints, "  │  ")

	left := m.flash
	if left == "" {
		left = m.rcPath
	}
	if left == "" {
		left = "no rc file loaded"
	}

	inner := max(m.width-2, 1) // StatusBarStyle pads one cell each side
	avail := inner - lipgloss.Width(right) - 2
	left = styles.Truncate(left, max(avail, 0))
	pad := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return styles.StatusBarStyle.Render(left + strings.Repeat(" ", pad) + right)
}

// sidebarWidth returns the sidebar width (30% of total, min 20, max 30).
func (m Model) sidebarWidth() int {
	w := m.width * 30 / 100
	return max(min(w, 30), 20)
}
