package scopeapp

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mfeld/skysweep/internal"
)

const (
	panelWidth   = 24
	buttonWidth  = 16
	minFaceSpan  = 11
	rangeButtonX = 2
	alertButtonX = rangeButtonX + buttonWidth + 2
)

// model implements the bubbletea.Model interface, which requires three methods:
// - Init() Cmd
// - Update(Msg) (Model, Cmd)
// - View() string
// This forms the base for the scope app. All radar state mutation happens
// inside Update, so the single-loop discipline of the core holds.
type model struct {
	radar  *internal.Radar
	logger *slog.Logger

	width  int
	height int

	canvas   *Canvas
	layout   faceLayout
	faceView string
	compass  []compassBound
	buttons  []TouchButton
	frame    int

	panel      *Panel
	contactTbl table.Model
	page       uiState
	debounce   *Debouncer
	lastUpdate time.Time

	theme      Theme
	palette    [styleCount]lipgloss.Style
	baseStyle  lipgloss.Style
	labelStyle lipgloss.Style
	valueStyle lipgloss.Style
	tableStyle table.Styles
}

func newModel(radar *internal.Radar, logger *slog.Logger) model {
	theme := defaultTheme()

	tableStyle := table.DefaultStyles()
	tableStyle.Selected = lipgloss.NewStyle().Background(theme.Highlight)

	return model{
		radar:      radar,
		logger:     logger,
		panel:      NewPanel(),
		contactTbl: newContactListTable(tableStyle),
		page:       scopePage,
		debounce:   NewDebouncer(touchDebounceInterval),
		theme:      theme,
		palette:    theme.palette(),
		baseStyle:  lipgloss.NewStyle(),
		labelStyle: lipgloss.NewStyle().Foreground(theme.Secondary),
		valueStyle: lipgloss.NewStyle().Foreground(theme.Primary),
		tableStyle: tableStyle,
	}
}

// Init schedules the recurring frame and fetch ticks and fires the very
// first feed request immediately.
func (m *model) Init() tea.Cmd {
	cfg := m.radar.Config()

	return tea.Batch(
		frameTick(cfg.FrameInterval),
		fetchTick(cfg.FetchInterval),
		fetchFeedCmd(cfg.FeedURL),
	)
}

// Update takes a tea.Msg as input and uses a type switch to handle different
// types of messages.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { //nolint:ireturn // required by interface
	switch thisMsg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = thisMsg.Width
		m.height = thisMsg.Height
		m.relayout()

	case tea.KeyMsg:
		return m.handleKey(thisMsg)

	case tea.MouseMsg:
		return m.handleTouch(thisMsg)

	case FrameTickMsg:
		now := time.Time(thisMsg)
		m.frame++
		if m.radar.FrameAdvance(now) {
			m.panel.MarkDirty()
		}
		m.composeFace(now)
		m.panel.Update(buildPanelRows(m.radar, now), m.labelStyle, m.valueStyle)

		return m, frameTick(m.radar.Config().FrameInterval)

	case FetchTickMsg:
		now := time.Time(thisMsg)
		cmds := []tea.Cmd{fetchTick(m.radar.Config().FetchInterval)}
		if m.radar.FetchDue(now) {
			cmds = append(cmds, fetchFeedCmd(m.radar.Config().FeedURL))
		}

		return m, tea.Batch(cmds...)

	case FeedMsg:
		if thisMsg.Err != nil {
			m.radar.ApplyFeedError(thisMsg.Err, thisMsg.At)
		} else {
			m.radar.ApplyFeed(thisMsg.Body, thisMsg.At)
		}
		m.lastUpdate = thisMsg.At
		m.panel.MarkDirty()
		m.contactTbl.SetRows(contactListRows(m.radar))

		return m, nil
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		if m.page == scopePage {
			m.page = listPage
		} else {
			m.page = scopePage
		}

	case "r":
		return m, m.cycleSetting(m.radar.CycleRange)

	case "a":
		return m, m.cycleSetting(m.radar.CycleAlert)

	case "o":
		m.radar.Rotate()
		m.panel.MarkDirty()

	case "up", "k", "down", "j":
		if m.page == listPage {
			var cmd tea.Cmd
			m.contactTbl, cmd = m.contactTbl.Update(msg)

			return m, cmd
		}
	}

	return m, nil
}

// handleTouch maps mouse presses onto the touch semantics of the original
// device: buttons first, then the radar disc (rotation). Presses within the
// debounce interval of the previous accepted one are dropped.
func (m *model) handleTouch(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.page != scopePage {
		return m, nil
	}
	if !m.debounce.Accept(time.Now()) {
		return m, nil
	}

	for _, button := range m.buttons {
		if !button.Contains(msg.X, msg.Y) {
			continue
		}
		switch button.Kind {
		case buttonRange:
			return m, m.cycleSetting(m.radar.CycleRange)
		case buttonAlert:
			return m, m.cycleSetting(m.radar.CycleAlert)
		}
	}

	if m.canvas != nil && (inDisc(msg.X, msg.Y, m.layout) || m.onCompassLabel(msg.X, msg.Y)) {
		m.radar.Rotate()
		m.panel.MarkDirty()
	}

	return m, nil
}

// onCompassLabel hit-tests the cached compass label bounds. The labels sit
// just outside the disc, so a slightly wide tap still rotates.
func (m *model) onCompassLabel(x, y int) bool {
	for _, bound := range m.compass {
		if y == bound.y && x >= bound.x && x < bound.x+bound.w {
			return true
		}
	}

	return false
}

// cycleSetting runs a range/alert mutation and fires the forced fetch that
// goes with it, bypassing the periodic timer.
func (m *model) cycleSetting(cycle func()) tea.Cmd {
	cycle()
	m.panel.MarkDirty()
	m.contactTbl.SetRows(nil)

	return fetchFeedCmd(m.radar.Config().FeedURL)
}

// relayout recomputes the face geometry and the button regions. The canvas
// is reallocated here and only here; every frame reuses it.
func (m *model) relayout() {
	faceWidth := m.width - panelWidth - 2
	faceHeight := m.height - 2

	radius := (faceWidth - 6) / 2
	if vertical := faceHeight - 3; vertical < radius {
		radius = vertical
	}
	if radius < minFaceSpan {
		radius = minFaceSpan
	}

	canvasWidth := radius*2 + 7
	canvasHeight := radius + 4

	m.canvas = NewCanvas(canvasWidth, canvasHeight)
	m.layout = faceLayout{
		centerX: canvasWidth / 2,
		centerY: canvasHeight / 2,
		radius:  float64(radius),
	}

	buttonY := canvasHeight
	m.buttons = []TouchButton{
		{Label: "RANGE", Kind: buttonRange, X: rangeButtonX, Y: buttonY, W: buttonWidth, H: 1},
		{Label: "ALERT", Kind: buttonAlert, X: alertButtonX, Y: buttonY, W: buttonWidth, H: 1},
	}

	m.contactTbl.SetHeight(max(4, m.height-6))
	m.panel.MarkDirty()
}

// composeFace repaints the off-screen canvas and blits it into the cached
// face string shown by View.
func (m *model) composeFace(now time.Time) {
	if m.canvas == nil {
		return
	}

	m.canvas.Clear()
	m.compass = drawFace(m.canvas, m.layout, m.radar, now, m.frame)
	if !m.radar.DataAvailable() {
		m.canvas.Text(1, 0, "NO LINK", styleAlert)
	}
	m.faceView = m.canvas.Blit(&m.palette)
}

func (m *model) View() string {
	if m.page == listPage {
		return m.viewList()
	}

	return m.viewScope()
}

func (m *model) viewScope() string {
	face := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.faceView,
		m.baseStyle.Width(panelWidth).Padding(0, 0, 0, 2).Render(m.panel.View()),
	)

	return m.baseStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, face, m.buttonBar()))
}

// buttonBar renders the two control buttons at their hit-test positions.
func (m *model) buttonBar() string {
	settings := m.radar.Settings()

	rangeLabel := fmt.Sprintf("[ RANGE %3.0f KM ]", settings.RangeKm())
	alertLabel := fmt.Sprintf("[ ALERT %3.0f KM ]", settings.AlertKm())

	bar := spaces(rangeButtonX) + m.labelStyle.Render(rangeLabel)
	bar += spaces(alertButtonX - rangeButtonX - buttonWidth)
	bar += m.labelStyle.Render(alertLabel)

	return bar
}

func (m *model) viewList() string {
	header := m.baseStyle.Bold(true).Render("Tracked contacts") +
		"  " + m.labelStyle.Render(listAge(m.lastUpdate, time.Now()))
	help := m.labelStyle.Render("tab: scope  r: range  a: alert  q: quit")

	return m.baseStyle.
		Width(m.width).
		Height(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, m.contactTbl.View(), help))
}

func spaces(n int) string {
	out := ""
	for range n {
		out += " "
	}

	return out
}
