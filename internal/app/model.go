package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atlaschat/atlaschat/internal/dispatcher"
	"github.com/atlaschat/atlaschat/internal/eventbus"
	"github.com/atlaschat/atlaschat/internal/locale"
	"github.com/atlaschat/atlaschat/internal/mapview"
	"github.com/atlaschat/atlaschat/internal/models"
	"github.com/atlaschat/atlaschat/internal/update"
	"github.com/atlaschat/atlaschat/ui/components"
	"github.com/atlaschat/atlaschat/ui/styles"
)

const (
	statusBarHeight = 1
	helpBarHeight   = 1
	inputHeight     = 3
)

// Model is the Bubble Tea model. It keeps UI-local state only; session
// state arrives as snapshots over the dispatcher.
type Model struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher

	input      textinput.Model
	transcript viewport.Model

	// surface is rebuilt whenever the snapshot's remount token changes;
	// the widget is never re-targeted in place.
	surface *mapview.TerminalMap
	ready   bool
}

func NewModel(disp *dispatcher.EventDispatcher, language string) *Model {
	input := textinput.New()
	input.Placeholder = locale.For(language).InputPlaceholder
	input.Focus()
	input.CharLimit = 500

	return &Model{
		appModel: models.AppModel{
			Status: locale.For(language).StatusReady,
			Focus:  models.FocusInput,
		},
		dispatcher: disp,
		input:      input,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		update.TickCmd(),
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatcher.CoreEventMsg:
		m.handleCoreEvent(msg)
		return m, m.dispatcher.ListenForCoreEvents()

	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case update.TickMsg:
		return m, update.HandleTickMsg(&m.appModel)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResize is the "interactive context ready" signal: the first window
// size confirms a live terminal, which is when the map surface may mount.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	update.HandleWindowSizeMsg(&m.appModel, msg)

	chatWidth, mapWidth, mapHeight := m.layout()
	chatHeight := m.appModel.Height - statusBarHeight - helpBarHeight - inputHeight

	if !m.ready {
		m.ready = true
		m.transcript = viewport.New(chatWidth, chatHeight)
	} else {
		m.transcript.Width = chatWidth
		m.transcript.Height = chatHeight
	}
	m.input.Width = chatWidth - 6

	if m.surface == nil {
		m.surface = mapview.NewTerminalMap(m.appModel.Snapshot.RemountToken)
	}
	m.surface.Mount(mapWidth-2, mapHeight-2)
	m.syncSurface()
	m.refreshTranscript()
}

func (m *Model) handleCoreEvent(msg dispatcher.CoreEventMsg) {
	remount := update.HandleCoreEvent(&m.appModel, msg.Event)
	if remount {
		// Fresh identity for the widget: rebuild rather than update in
		// place, so no pan/zoom leaks across sessions.
		m.surface = mapview.NewTerminalMap(m.appModel.Snapshot.RemountToken)
		if m.ready {
			_, mapWidth, mapHeight := m.layout()
			m.surface.Mount(mapWidth-2, mapHeight-2)
		}
	}
	m.input.Placeholder = m.copy().InputPlaceholder
	m.syncSurface()
	m.refreshTranscript()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.appModel.PickerOpen {
		selected, close := update.HandlePickerKey(&m.appModel, key)
		if selected != "" {
			m.sendToCore(eventbus.SelectModelEvent{ID: selected})
		}
		if close {
			m.appModel.PickerOpen = false
		}
		return m, nil
	}

	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+p":
		m.appModel.PickerOpen = true
		m.appModel.PickerIndex = 0
		return m, nil
	case "ctrl+l":
		m.sendToCore(eventbus.SetLanguageEvent{
			Language: locale.Toggle(m.appModel.Snapshot.Language),
		})
		return m, nil
	case "ctrl+r":
		m.sendToCore(eventbus.RestartSessionEvent{})
		return m, nil
	case "tab":
		if m.appModel.Focus == models.FocusInput {
			m.appModel.Focus = models.FocusMap
			m.input.Blur()
		} else {
			m.appModel.Focus = models.FocusInput
			m.input.Focus()
		}
		return m, nil
	}

	if m.appModel.Focus == models.FocusMap {
		if action, ok := update.MapKeyAction(key); ok && m.surface != nil {
			if action.Recenter {
				m.surface.Recenter()
			}
			if action.Zoom != 0 {
				m.surface.Zoom(action.Zoom)
			}
			m.surface.Pan(action.DCols, action.DRows)
			return m, nil
		}
		return m, nil
	}

	if key == "enter" {
		m.submit()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit is gated on the thinking status as a UI affordance only; the core
// sequence counter is what actually protects against racing responses.
func (m *Model) submit() {
	if m.appModel.Snapshot.Status == models.StatusThinking {
		return
	}
	prompt := strings.TrimSpace(m.input.Value())
	if prompt == "" {
		return
	}
	m.sendToCore(eventbus.SubmitPromptEvent{Prompt: prompt})
	m.input.SetValue("")
}

func (m *Model) sendToCore(event eventbus.UIEvent) {
	if err := m.dispatcher.GetEventBus().SendToCore(event); err != nil {
		m.appModel.Status = "Event bus error: " + err.Error()
	}
}

func (m *Model) syncSurface() {
	if m.surface != nil {
		m.surface.SetView(m.appModel.Snapshot.View, m.appModel.Snapshot.CenterEpoch)
	}
}

// refreshTranscript re-renders the chat pane and follows the newest
// message, the auto-scroll triggered by transcript changes.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}
	m.transcript.SetContent(components.RenderMessages(m.appModel.Snapshot.Transcript, m.transcript.Width))
	m.transcript.GotoBottom()
}

func (m *Model) copy() locale.Copy {
	return locale.For(m.appModel.Snapshot.Language)
}

func (m *Model) layout() (chatWidth, mapWidth, mapHeight int) {
	chatWidth = m.appModel.Width * 11 / 20
	mapWidth = m.appModel.Width - chatWidth
	mapHeight = (m.appModel.Height - statusBarHeight) * 3 / 5
	if mapHeight < 8 {
		mapHeight = 8
	}
	return chatWidth, mapWidth, mapHeight
}

func (m *Model) View() string {
	if !m.ready {
		return m.copy().MapPlaceholder
	}

	copy := m.copy()
	chatWidth, mapWidth, mapHeight := m.layout()

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.transcript.View(),
		styles.InputStyle(chatWidth).Render(m.input.View()),
		styles.MapLegendStyle().Render(copy.HelpLine),
	)

	sideHeight := m.appModel.Height - statusBarHeight - mapHeight -
		lipgloss.Height(components.RenderLegend(m.appModel.Snapshot.View, mapWidth))
	right := lipgloss.JoinVertical(lipgloss.Left,
		components.RenderMap(m.surface, m.appModel.Snapshot.View, copy,
			mapWidth, mapHeight, m.appModel.Focus == models.FocusMap),
		components.RenderLegend(m.appModel.Snapshot.View, mapWidth),
		components.RenderPlaces(m.appModel.Snapshot.Places, copy, mapWidth, sideHeight),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(chatWidth).Render(left),
		right,
	)

	if m.appModel.PickerOpen {
		overlay := components.RenderModelPicker(m.appModel.Snapshot, copy, m.appModel.PickerIndex)
		body = lipgloss.Place(m.appModel.Width, lipgloss.Height(body),
			lipgloss.Center, lipgloss.Center, overlay)
	}

	status := components.RenderStatus(m.appModel, components.ModelLabel(m.appModel.Snapshot))
	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}
