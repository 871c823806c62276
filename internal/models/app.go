package models

type FocusTarget int

const (
	FocusInput FocusTarget = iota
	FocusMap
)

// AppModel holds local UI concerns only. Session state arrives as
// SessionSnapshot pushes from core and is stored here for rendering.
type AppModel struct {
	Snapshot SessionSnapshot

	Status      string // status bar text
	Loading     bool
	LoadingDots int

	Width  int
	Height int

	Focus       FocusTarget
	PickerOpen  bool
	PickerIndex int
}
