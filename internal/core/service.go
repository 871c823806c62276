// Package core is the agent-map session controller: it owns conversation,
// status, registry and map state, and orchestrates calls to the backend
// based on commands arriving over the event bus.
package core

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/atlaschat/atlaschat/internal/agent"
	"github.com/atlaschat/atlaschat/internal/eventbus"
	"github.com/atlaschat/atlaschat/internal/models"
)

// AgentAPI is the slice of the backend client the session controller needs.
type AgentAPI interface {
	ListModels(ctx context.Context) ([]models.ModelOption, error)
	SearchMap(ctx context.Context, prompt, modelName string) (*agent.MapResult, error)
}

// SessionService runs the session core in its own goroutine, reacting to UI
// events and pushing state snapshots back.
type SessionService struct {
	api      AgentAPI
	state    *SessionState
	eventBus *eventbus.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewSessionService(api AgentAPI, language string, eb *eventbus.EventBus) *SessionService {
	ctx, cancel := context.WithCancel(context.Background())
	return &SessionService{
		api:      api,
		state:    NewSessionState(language),
		eventBus: eb,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start pushes the seeded initial state, kicks off the one-per-session
// registry fetch, and begins consuming UI events.
func (s *SessionService) Start() {
	s.pushState()
	s.loadModels()
	go s.eventLoop()
}

func (s *SessionService) Stop() {
	s.cancel()
}

// State exposes the owned state for tests.
func (s *SessionService) State() *SessionState {
	return s.state
}

func (s *SessionService) eventLoop() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-s.eventBus.UIToCore():
			if !ok {
				return
			}
			s.handleUIEvent(event)
		}
	}
}

func (s *SessionService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SubmitPromptEvent:
		s.handleSubmit(e.Prompt)
	case eventbus.SelectModelEvent:
		s.state.SelectModel(e.ID)
		s.pushState()
	case eventbus.SetLanguageEvent:
		s.state.SetLanguage(e.Language)
		s.pushState()
	case eventbus.RestartSessionEvent:
		s.state.Restart()
		s.pushState()
		s.loadModels()
	case eventbus.ReloadModelsEvent:
		s.loadModels()
	}
}

// handleSubmit runs the agent call off the event loop so a second
// submission can race the first; the sequence number decides which response
// wins, the later issued one.
func (s *SessionService) handleSubmit(prompt string) {
	seq, ok := s.state.BeginSubmit(prompt)
	if !ok {
		return
	}
	modelID := s.state.SelectedModel()
	s.pushState()

	go func() {
		res, err := s.api.SearchMap(s.ctx, prompt, modelID)
		if s.ctx.Err() != nil {
			return
		}
		if err != nil {
			if s.state.FailSubmit(seq, submitErrorMessage(err)) {
				s.pushState()
			}
			return
		}
		if s.state.CompleteSubmit(seq, res) {
			s.pushState()
		}
	}()
}

// loadModels fetches the registry once; a retry or restart supersedes the
// attempt via the generation token, so a stale response can never land.
func (s *SessionService) loadModels() {
	gen := s.state.BeginModelsFetch()
	go func() {
		options, err := s.api.ListModels(s.ctx)
		if s.ctx.Err() != nil {
			return
		}
		errMsg := ""
		if err != nil {
			errMsg = fmt.Sprintf("model registry unavailable: %v", err)
		}
		if s.state.CompleteModelsFetch(gen, options, errMsg) {
			s.pushState()
		}
	}()
}

func (s *SessionService) pushState() {
	if err := s.eventBus.SendToUI(eventbus.StateUpdateEvent{Snapshot: s.state.Snapshot()}); err != nil {
		log.Printf("push state to UI: %v", err)
	}
}

// submitErrorMessage prefers the backend's own detail text, then a
// status-derived message, then a generic one for transport-level failures.
func submitErrorMessage(err error) string {
	var apiErr *agent.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fmt.Sprintf("The server answered with status %d.", apiErr.StatusCode)
	}
	return "Something went wrong. Please try again."
}
