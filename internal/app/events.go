// internal/app/events.go
package app

import (
	"github.com/Meowchestra/MidiEditor-sub001/internal/event"
)

// subscribeEvents wires the app-level reactions to editor events.
func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeActionFinished, a.handleActionFinished)
	a.eventManager.Subscribe(event.TypeSelectionChanged, a.handleSelectionChanged)
	a.eventManager.Subscribe(event.TypeSongModified, a.handleSongModified)
	a.eventManager.Subscribe(event.TypeSongLoaded, a.handleSongLoaded)
	a.eventManager.Subscribe(event.TypeSongSaved, a.handleSongSaved)
	a.eventManager.Subscribe(event.TypeToolChanged, a.handleToolChanged)
}

func (a *App) handleActionFinished(e event.Event) bool {
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}

func (a *App) handleSelectionChanged(e event.Event) bool {
	if data, ok := e.Data.(event.SelectionChangedData); ok {
		a.statusBar.SetSelectionInfo(data.Count)
	}
	a.requestRedraw()
	return false
}

func (a *App) handleSongModified(e event.Event) bool {
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}

func (a *App) handleSongLoaded(e event.Event) bool {
	if data, ok := e.Data.(event.SongLoadedData); ok {
		a.statusBar.SetTemporaryMessage("Loaded %s", data.FilePath)
	}
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}

func (a *App) handleSongSaved(e event.Event) bool {
	if data, ok := e.Data.(event.SongSavedData); ok {
		a.statusBar.SetTemporaryMessage("Saved %s", data.FilePath)
	}
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}

func (a *App) handleToolChanged(e event.Event) bool {
	if data, ok := e.Data.(event.ToolChangedData); ok {
		a.statusBar.SetToolInfo(data.Name)
	}
	a.requestRedraw()
	return false
}
