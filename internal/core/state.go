package core

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/atlaschat/atlaschat/internal/agent"
	"github.com/atlaschat/atlaschat/internal/geo"
	"github.com/atlaschat/atlaschat/internal/locale"
	"github.com/atlaschat/atlaschat/internal/models"
)

// DefaultModelID is usable for agent requests even before (or instead of)
// a successful registry fetch.
const DefaultModelID = "openai/gpt-4o-mini"

// SessionState owns all session-wide state: the transcript, the submission
// status machine, the model registry, and the latest map view. It is the
// single writer for every slice of that state; the UI only ever sees
// immutable snapshots.
type SessionState struct {
	mu sync.RWMutex

	transcript    []models.ChatMessage
	status        models.SessionStatus
	errMsg        string
	hasInteracted bool
	language      string

	options    []models.ModelOption
	optionsErr string
	selected   string

	center      *models.Center
	places      []models.Place
	view        models.MapView
	centerEpoch int

	remountToken string

	// latestSeq is the sequence number of the most recently issued agent
	// request. Responses for any other sequence are stale and discarded.
	latestSeq uint64
	// modelsGen guards the registry the same way: only the latest fetch
	// attempt may apply its result.
	modelsGen uint64
}

func NewSessionState(language string) *SessionState {
	return &SessionState{
		transcript:   locale.SeedTranscript(language),
		status:       models.StatusIdle,
		language:     language,
		selected:     DefaultModelID,
		view:         geo.Resolve(nil, nil),
		remountToken: uuid.NewString(),
	}
}

// BeginSubmit validates and records a new submission. Empty prompts after
// trimming are a silent no-op. The scripted seed transcript is replaced,
// not appended to, on the first real submission. Returns the sequence
// number assigned to the request.
func (s *SessionState) BeginSubmit(prompt string) (seq uint64, ok bool) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return 0, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasInteracted {
		s.transcript = nil
		s.hasInteracted = true
	}
	s.transcript = append(s.transcript, models.ChatMessage{Role: models.User, Text: trimmed})
	s.errMsg = ""
	s.status = models.StatusThinking

	s.latestSeq++
	return s.latestSeq, true
}

// CompleteSubmit applies a successful agent response. Center and places are
// two independent optional updates taken from the same response; a response
// that is no longer the latest issued request is dropped wholesale. Reports
// whether the state changed.
func (s *SessionState) CompleteSubmit(seq uint64, res *agent.MapResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.latestSeq {
		return false
	}

	s.transcript = append(s.transcript, models.ChatMessage{Role: models.Agent, Text: res.Response})
	s.status = models.StatusIdle
	s.errMsg = ""

	if res.Center != nil {
		s.center = res.Center
		s.centerEpoch++
	}
	if res.HasPlaces {
		s.places = res.Places
	}
	if res.Center != nil || res.HasPlaces {
		s.view = geo.Resolve(s.center, s.places)
	}
	return true
}

// FailSubmit records a failed agent call. The transcript and map state are
// left untouched; the message is surfaced out-of-band via status.
func (s *SessionState) FailSubmit(seq uint64, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.latestSeq {
		return false
	}
	s.status = models.StatusError
	s.errMsg = message
	return true
}

// BeginModelsFetch invalidates any outstanding registry fetch and returns
// the generation token for the new one.
func (s *SessionState) BeginModelsFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modelsGen++
	return s.modelsGen
}

// CompleteModelsFetch applies a registry result if it is still the live
// attempt. On failure the option list is cleared entirely, a half-populated
// registry is never shown, while the selected model id stays usable.
func (s *SessionState) CompleteModelsFetch(gen uint64, options []models.ModelOption, errMsg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.modelsGen {
		return false
	}
	if errMsg != "" {
		s.options = nil
		s.optionsErr = errMsg
		return true
	}

	s.options = options
	s.optionsErr = ""
	if s.selected == DefaultModelID && len(options) > 0 {
		s.selected = options[0].ID
	}
	return true
}

// SelectModel records the current selection. Dangling ids are tolerated;
// they just fail to match an option for display.
func (s *SessionState) SelectModel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" {
		s.selected = id
	}
}

func (s *SessionState) SelectedModel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// SetLanguage switches localization. Before the first real interaction the
// scripted transcript is re-seeded in the new language; afterwards the
// transcript is user content and stays as-is.
func (s *SessionState) SetLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lang == "" || lang == s.language {
		return
	}
	s.language = lang
	if !s.hasInteracted {
		s.transcript = locale.SeedTranscript(lang)
	}
}

// Restart resets the session to its initial shape. The remount token is
// regenerated so the map surface is rebuilt instead of inheriting pan and
// zoom from the previous mount, and both counters are bumped so any
// in-flight response or registry fetch is discarded on arrival.
func (s *SessionState) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcript = locale.SeedTranscript(s.language)
	s.status = models.StatusIdle
	s.errMsg = ""
	s.hasInteracted = false
	s.center = nil
	s.places = nil
	s.view = geo.Resolve(nil, nil)
	s.centerEpoch = 0
	s.remountToken = uuid.NewString()
	s.latestSeq++
	s.modelsGen++
}

// Snapshot returns a deep-enough copy of the current state for rendering.
func (s *SessionState) Snapshot() models.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transcript := make([]models.ChatMessage, len(s.transcript))
	copy(transcript, s.transcript)
	options := make([]models.ModelOption, len(s.options))
	copy(options, s.options)
	places := make([]models.Place, len(s.places))
	copy(places, s.places)
	markers := make([]models.Marker, len(s.view.Markers))
	copy(markers, s.view.Markers)

	return models.SessionSnapshot{
		Transcript:    transcript,
		Status:        s.status,
		ErrMsg:        s.errMsg,
		HasInteracted: s.hasInteracted,
		Language:      s.language,
		Models:        options,
		ModelsErr:     s.optionsErr,
		SelectedModel: s.selected,
		Places:        places,
		View:          models.MapView{Center: s.view.Center, Markers: markers},
		CenterEpoch:   s.centerEpoch,
		RemountToken:  s.remountToken,
	}
}
