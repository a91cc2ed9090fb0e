// internal/event/event.go
package event

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Core Editor Events
	TypeActionFinished   // Fired after every completed undo action group, undo or redo
	TypeSelectionChanged // Fired when the selection set changes
	TypeSongModified     // Fired when document data changes outside a finished action
	TypeSongLoaded       // Fired after a song is successfully loaded
	TypeSongSaved        // Fired after a song is successfully saved
	TypeToolChanged      // Fired when the active tool changes

	// Application Lifecycle Events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---

// ActionFinishedData describes the action group that just completed.
type ActionFinishedData struct {
	Label string
	Undo  bool // true when this notification comes from Undo/Redo rather than EndAction
}

// SelectionChangedData carries the new selection size.
type SelectionChangedData struct {
	Count int
}

// SongModifiedData carries the new value of the unsaved-changes flag.
type SongModifiedData struct {
	Modified bool
}

// SongLoadedData contains info about the loaded song.
type SongLoadedData struct {
	FilePath string
}

// SongSavedData contains info about the saved song.
type SongSavedData struct {
	FilePath string
}

// ToolChangedData names the newly active tool.
type ToolChangedData struct {
	Name string
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
