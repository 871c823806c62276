package core

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlaschat/atlaschat/internal/agent"
	"github.com/atlaschat/atlaschat/internal/eventbus"
	"github.com/atlaschat/atlaschat/internal/locale"
	"github.com/atlaschat/atlaschat/internal/models"
)

// fakeAPI answers SearchMap from a per-prompt channel so tests control
// completion order.
type fakeAPI struct {
	models    []models.ModelOption
	modelsErr error
	replies   map[string]chan *agent.MapResult
	searchErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		models:  []models.ModelOption{{ID: "openai/gpt-4o", Name: "GPT-4o"}},
		replies: map[string]chan *agent.MapResult{},
	}
}

func (f *fakeAPI) ListModels(ctx context.Context) ([]models.ModelOption, error) {
	return f.models, f.modelsErr
}

func (f *fakeAPI) SearchMap(ctx context.Context, prompt, modelName string) (*agent.MapResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	if ch, ok := f.replies[prompt]; ok {
		select {
		case res := <-ch:
			return res, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &agent.MapResult{Response: "echo: " + prompt}, nil
}

func waitForSnapshot(t *testing.T, eb *eventbus.EventBus, pred func(models.SessionSnapshot) bool) models.SessionSnapshot {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-eb.CoreToUI():
			if update, ok := ev.(eventbus.StateUpdateEvent); ok && pred(update.Snapshot) {
				return update.Snapshot
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
		}
	}
}

func startService(t *testing.T, api AgentAPI) (*SessionService, *eventbus.EventBus) {
	t.Helper()
	eb := eventbus.NewEventBus()
	svc := NewSessionService(api, locale.English, eb)
	svc.Start()
	t.Cleanup(svc.Stop)
	return svc, eb
}

func TestService_StartPushesSeedThenModels(t *testing.T) {
	_, eb := startService(t, newFakeAPI())

	seed := waitForSnapshot(t, eb, func(s models.SessionSnapshot) bool { return len(s.Transcript) == 3 })
	assert.False(t, seed.HasInteracted)

	withModels := waitForSnapshot(t, eb, func(s models.SessionSnapshot) bool { return len(s.Models) > 0 })
	assert.Equal(t, "openai/gpt-4o", withModels.SelectedModel)
}

func TestService_SubmitRoundTrip(t *testing.T) {
	_, eb := startService(t, newFakeAPI())

	require.NoError(t, eb.SendToCore(eventbus.SubmitPromptEvent{Prompt: "coffee in Moda"}))

	thinking := waitForSnapshot(t, eb, func(s models.SessionSnapshot) bool {
		return s.Status == models.StatusThinking
	})
	require.Len(t, thinking.Transcript, 1)

	done := waitForSnapshot(t, eb, func(s models.SessionSnapshot) bool {
		return s.Status == models.StatusIdle && s.HasInteracted && len(s.Transcript) == 2
	})
	assert.Equal(t, "echo: coffee in Moda", done.Transcript[1].Text)
}

func TestService_WhitespacePromptIssuesNothing(t *testing.T) {
	svc, eb := startService(t, newFakeAPI())

	require.NoError(t, eb.SendToCore(eventbus.SubmitPromptEvent{Prompt: "   "}))
	require.NoError(t, eb.SendToCore(eventbus.SelectModelEvent{ID: "openai/gpt-4o"}))

	// The SelectModel push proves the loop processed both events; the
	// blank submit must have left the transcript seeded and idle.
	snap := waitForSnapshot(t, eb, func(s models.SessionSnapshot) bool {
		return s.SelectedModel == "openai/gpt-4o"
	})
	assert.False(t, snap.HasInteracted)
	assert.Equal(t, models.StatusIdle, snap.Status)
	assert.Len(t, svc.State().Snapshot().Transcript, 3)
}

func TestService_ErrorMessagePreference(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server detail preferred",
			err:  &agent.APIError{StatusCode: http.StatusBadRequest, Detail: "prompt too long"},
			want: "prompt too long",
		},
		{
			name: "status-derived fallback",
			err:  &agent.APIError{StatusCode: http.StatusInternalServerError},
			want: "The server answered with status 500.",
		},
		{
			name: "generic for transport failures",
			err:  context.DeadlineExceeded,
			want: "Something went wrong. Please try again.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			api := newFakeAPI()
			api.searchErr = tc.err
			_, eb := startService(t, api)

			require.NoError(t, eb.SendToCore(eventbus.SubmitPromptEvent{Prompt: "q"}))
			snap := waitForSnapshot(t, eb, func(s models.SessionSnapshot) bool {
				return s.Status == models.StatusError
			})
			assert.Equal(t, tc.want, snap.ErrMsg)
			assert.Len(t, snap.Transcript, 1, "transcript keeps only the user message")
		})
	}
}

func TestService_LaterRequestWinsRace(t *testing.T) {
	api := newFakeAPI()
	first := make(chan *agent.MapResult, 1)
	second := make(chan *agent.MapResult, 1)
	api.replies["first"] = first
	api.replies["second"] = second

	svc, eb := startService(t, api)

	require.NoError(t, eb.SendToCore(eventbus.SubmitPromptEvent{Prompt: "first"}))
	waitForSnapshot(t, eb, func(s models.SessionSnapshot) bool { return len(s.Transcript) == 1 })
	require.NoError(t, eb.SendToCore(eventbus.SubmitPromptEvent{Prompt: "second"}))
	waitForSnapshot(t, eb, func(s models.SessionSnapshot) bool { return len(s.Transcript) == 2 })

	// Resolve out of order: #2 first, then the stale #1.
	second <- &agent.MapResult{Response: "answer two"}
	final := waitForSnapshot(t, eb, func(s models.SessionSnapshot) bool {
		return s.Status == models.StatusIdle
	})
	assert.Equal(t, "answer two", final.Transcript[len(final.Transcript)-1].Text)

	// Let the stale #1 land and confirm it was discarded.
	first <- &agent.MapResult{Response: "answer one"}
	time.Sleep(50 * time.Millisecond)
	tr := svc.State().Snapshot().Transcript
	assert.Equal(t, "answer two", tr[len(tr)-1].Text)
	assert.Equal(t, models.StatusIdle, svc.State().Snapshot().Status)
}
