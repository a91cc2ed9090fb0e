// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/Meowchestra/MidiEditor-sub001/internal/config"
	"github.com/Meowchestra/MidiEditor-sub001/internal/core"
	"github.com/Meowchestra/MidiEditor-sub001/internal/event"
	"github.com/Meowchestra/MidiEditor-sub001/internal/input"
	"github.com/Meowchestra/MidiEditor-sub001/internal/logger"
	"github.com/Meowchestra/MidiEditor-sub001/internal/song"
	"github.com/Meowchestra/MidiEditor-sub001/internal/statusbar"
	"github.com/Meowchestra/MidiEditor-sub001/internal/tui"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	tuiManager     *tui.TUI
	editor         *core.Editor
	statusBar      *statusbar.StatusBar
	eventManager   *event.Manager
	inputProcessor *input.InputProcessor
	cfg            *config.Config

	// Mouse gesture state: previous button mask, and whether a press was
	// delivered to the active tool.
	prevButtons tcell.ButtonMask
	toolPressed bool

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates and initializes a new application instance. An empty
// filePath starts with a fresh song.
func NewApp(cfg *config.Config, filePath string) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	eventManager := event.NewManager()

	var doc *song.Song
	if filePath != "" {
		doc, err = song.Load(filePath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				logger.Infof("App: '%s' does not exist yet, starting empty", filePath)
				doc = song.New(config.TicksPerQuarter)
				doc.FilePath = filePath
			} else {
				tuiManager.Close()
				return nil, fmt.Errorf("loading '%s': %w", filePath, err)
			}
		}
	} else {
		doc = song.New(config.TicksPerQuarter)
	}

	editor := core.NewEditor(doc, eventManager, &cfg.Editor)

	appInstance := &App{
		tuiManager:     tuiManager,
		editor:         editor,
		statusBar:      statusbar.New(statusbar.DefaultConfig()),
		eventManager:   eventManager,
		inputProcessor: input.NewInputProcessor(),
		cfg:            cfg,
		quit:           make(chan struct{}),
		redrawRequest:  make(chan struct{}, 1),
	}

	appInstance.subscribeEvents()

	width, height := tuiManager.Size()
	appInstance.applyViewport(width, height)

	return appInstance, nil
}

// Run starts the application's main event and drawing loops.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("%s - Ctrl+S Save | ESC Quit | keys 1-0 switch tools", config.AppName)
	a.updateStatusBarContent()
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.Song().Modified() {
				logger.Warnf("App: exited with unsaved changes")
			}
			logger.Infof("App: exiting")
			return nil
		case <-a.redrawRequest:
			w, h := a.tuiManager.Size()
			a.applyViewport(w, h)
			a.draw()
		}
	}
}

// eventLoop handles TUI events, delegating keys to the input processor and
// pointer events to the active tool.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false

		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			needsRedraw = true

		case *tcell.EventKey:
			needsRedraw = a.handleKeyEvent(eventData)

		case *tcell.EventMouse:
			needsRedraw = a.handleMouseEvent(eventData)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// applyViewport keeps the matrix in sync with the screen size.
func (a *App) applyViewport(width, height int) {
	x, y, w, h := tui.RollViewport(width, height)
	a.editor.Matrix().SetViewport(x, y, w, h)
}

// draw clears the screen and redraws all components.
func (a *App) draw() {
	a.updateStatusBarContent()

	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	a.tuiManager.Clear()
	tui.DrawRoll(a.tuiManager, a.editor)
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current editor state to the status bar.
func (a *App) updateStatusBarContent() {
	s := a.editor.Song()
	a.statusBar.SetFileInfo(s.FilePath, s.Modified())
	a.statusBar.SetToolInfo(a.editor.ActiveTool().Name())
	a.statusBar.SetSelectionInfo(a.editor.Selection().Len())
	a.statusBar.SetHistoryInfo(a.editor.History().StepsBack(), a.editor.History().StepsForward())
	a.statusBar.SetMagnetInfo(a.cfg.Editor.MagnetEnabled)
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}
