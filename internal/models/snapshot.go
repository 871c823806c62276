package models

// SessionSnapshot is the read-only view of session state pushed from core to
// the UI. The UI never mutates it; commands flow back through the event bus.
type SessionSnapshot struct {
	Transcript    []ChatMessage
	Status        SessionStatus
	ErrMsg        string
	HasInteracted bool
	Language      string

	Models        []ModelOption
	ModelsErr     string
	SelectedModel string

	Places []Place
	View   MapView
	// CenterEpoch increments each time a response carries a new valid
	// center. The render surface re-centers only on an epoch change.
	CenterEpoch int
	// RemountToken changes on session restart; the map surface is rebuilt
	// whenever it does.
	RemountToken string
}
