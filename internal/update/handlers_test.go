package update

import (
	"testing"

	"github.com/atlaschat/atlaschat/internal/eventbus"
	"github.com/atlaschat/atlaschat/internal/locale"
	"github.com/atlaschat/atlaschat/internal/models"
)

func snapshotWith(status models.SessionStatus) models.SessionSnapshot {
	return models.SessionSnapshot{
		Status:       status,
		Language:     locale.English,
		RemountToken: "token-1",
	}
}

func TestHandleCoreEvent_AppliesSnapshot(t *testing.T) {
	appModel := &models.AppModel{}

	remount := HandleCoreEvent(appModel, eventbus.StateUpdateEvent{
		Snapshot: snapshotWith(models.StatusThinking),
	})

	if remount {
		t.Error("first snapshot must not request a remount")
	}
	if !appModel.Loading {
		t.Error("thinking snapshot should set Loading")
	}
	if appModel.Status != locale.For(locale.English).StatusThinking {
		t.Errorf("status = %q", appModel.Status)
	}
}

func TestHandleCoreEvent_RemountOnTokenChange(t *testing.T) {
	appModel := &models.AppModel{}
	HandleCoreEvent(appModel, eventbus.StateUpdateEvent{Snapshot: snapshotWith(models.StatusIdle)})

	next := snapshotWith(models.StatusIdle)
	next.RemountToken = "token-2"
	if !HandleCoreEvent(appModel, eventbus.StateUpdateEvent{Snapshot: next}) {
		t.Error("changed remount token must request a remount")
	}

	// Same token again: no remount.
	if HandleCoreEvent(appModel, eventbus.StateUpdateEvent{Snapshot: next}) {
		t.Error("unchanged token must not request a remount")
	}
}

func TestStatusText(t *testing.T) {
	en := locale.For(locale.English)

	errSnap := snapshotWith(models.StatusError)
	errSnap.ErrMsg = "backend down"
	tests := []struct {
		name string
		snap models.SessionSnapshot
		want string
	}{
		{"idle", snapshotWith(models.StatusIdle), en.StatusReady},
		{"thinking", snapshotWith(models.StatusThinking), en.StatusThinking},
		{"error carries message", errSnap, en.StatusErrPrefix + "backend down"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusText(tc.snap); got != tc.want {
				t.Errorf("StatusText = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStatusText_RegistryFailureIsNonFatal(t *testing.T) {
	snap := snapshotWith(models.StatusIdle)
	snap.ModelsErr = "registry unavailable"
	got := StatusText(snap)
	en := locale.For(locale.English)
	if got != en.StatusReady+" · "+en.ModelsFailed {
		t.Errorf("StatusText = %q", got)
	}
}

func TestHandlePickerKey(t *testing.T) {
	appModel := &models.AppModel{}
	appModel.Snapshot.Models = []models.ModelOption{
		{ID: "a", Name: "A"}, {ID: "b", Name: "B"},
	}

	if _, close := HandlePickerKey(appModel, "down"); close {
		t.Error("navigation must not close the picker")
	}
	if appModel.PickerIndex != 1 {
		t.Errorf("PickerIndex = %d, want 1", appModel.PickerIndex)
	}

	// Bottom of the list: stays put.
	HandlePickerKey(appModel, "down")
	if appModel.PickerIndex != 1 {
		t.Errorf("PickerIndex = %d, want 1 (clamped)", appModel.PickerIndex)
	}

	selected, close := HandlePickerKey(appModel, "enter")
	if selected != "b" || !close {
		t.Errorf("enter = (%q, %v), want (b, true)", selected, close)
	}

	if _, close := HandlePickerKey(appModel, "esc"); !close {
		t.Error("esc must close the picker")
	}
}

func TestMapKeyAction(t *testing.T) {
	if action, ok := MapKeyAction("+"); !ok || action.Zoom != 0.5 {
		t.Errorf("+ should zoom in, got %+v %v", action, ok)
	}
	if action, ok := MapKeyAction("c"); !ok || !action.Recenter {
		t.Errorf("c should recenter, got %+v %v", action, ok)
	}
	if _, ok := MapKeyAction("x"); ok {
		t.Error("unbound key should not be handled")
	}
}
