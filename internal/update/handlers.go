package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atlaschat/atlaschat/internal/eventbus"
	"github.com/atlaschat/atlaschat/internal/locale"
	"github.com/atlaschat/atlaschat/internal/models"
)

// HandleCoreEvent folds a core push into the UI model and reports whether
// the map surface identity changed, which forces a remount.
func HandleCoreEvent(appModel *models.AppModel, event eventbus.CoreEvent) (remount bool) {
	stateUpdate, ok := event.(eventbus.StateUpdateEvent)
	if !ok {
		return false
	}

	remount = appModel.Snapshot.RemountToken != "" &&
		appModel.Snapshot.RemountToken != stateUpdate.Snapshot.RemountToken

	appModel.Snapshot = stateUpdate.Snapshot
	appModel.Loading = stateUpdate.Snapshot.Status == models.StatusThinking
	appModel.Status = StatusText(stateUpdate.Snapshot)
	if appModel.PickerIndex >= len(stateUpdate.Snapshot.Models) {
		appModel.PickerIndex = 0
	}
	return remount
}

// StatusText derives the status bar text from the snapshot, localized.
func StatusText(snapshot models.SessionSnapshot) string {
	copy := locale.For(snapshot.Language)
	switch snapshot.Status {
	case models.StatusThinking:
		return copy.StatusThinking
	case models.StatusError:
		return copy.StatusErrPrefix + snapshot.ErrMsg
	default:
		if snapshot.ModelsErr != "" {
			return copy.StatusReady + " · " + copy.ModelsFailed
		}
		return copy.StatusReady
	}
}

// HandlePickerKey drives the model picker overlay. It returns the chosen
// model id when the user confirms, and whether the overlay should close.
func HandlePickerKey(appModel *models.AppModel, key string) (selected string, close bool) {
	switch key {
	case "esc", "ctrl+p":
		return "", true
	case "up", "k":
		if appModel.PickerIndex > 0 {
			appModel.PickerIndex--
		}
	case "down", "j":
		if appModel.PickerIndex < len(appModel.Snapshot.Models)-1 {
			appModel.PickerIndex++
		}
	case "enter":
		if appModel.PickerIndex < len(appModel.Snapshot.Models) {
			return appModel.Snapshot.Models[appModel.PickerIndex].ID, true
		}
		return "", true
	}
	return "", false
}

// MapKeyAction translates a key press into a viewport action for the
// focused map pane.
type MapAction struct {
	DCols    int
	DRows    int
	Zoom     float64
	Recenter bool
}

func MapKeyAction(key string) (MapAction, bool) {
	switch key {
	case "up":
		return MapAction{DRows: 1}, true
	case "down":
		return MapAction{DRows: -1}, true
	case "left":
		return MapAction{DCols: -2}, true
	case "right":
		return MapAction{DCols: 2}, true
	case "+", "=":
		return MapAction{Zoom: 0.5}, true
	case "-":
		return MapAction{Zoom: 2.0}, true
	case "c":
		return MapAction{Recenter: true}, true
	}
	return MapAction{}, false
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	if appModel.Loading {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}
