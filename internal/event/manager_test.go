package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchReachesSubscribers(t *testing.T) {
	m := NewManager()
	var got []Event

	m.Subscribe(TypeSongLoaded, func(e Event) bool {
		got = append(got, e)
		return false
	})
	m.Dispatch(TypeSongLoaded, SongLoadedData{FilePath: "a.mid"})
	m.Dispatch(TypeSongSaved, SongSavedData{FilePath: "a.mid"}) // different type, not delivered

	assert.Len(t, got, 1)
	assert.Equal(t, TypeSongLoaded, got[0].Type)
	assert.Equal(t, SongLoadedData{FilePath: "a.mid"}, got[0].Data)
}

func TestDispatchToMultipleHandlers(t *testing.T) {
	m := NewManager()
	calls := 0

	m.Subscribe(TypeToolChanged, func(e Event) bool { calls++; return false })
	m.Subscribe(TypeToolChanged, func(e Event) bool { calls++; return false })
	m.Dispatch(TypeToolChanged, ToolChangedData{Name: "eraser"})

	assert.Equal(t, 2, calls)
}

func TestSubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	lateCalls := 0

	m.Subscribe(TypeAppReady, func(e Event) bool {
		m.Subscribe(TypeAppReady, func(e Event) bool { lateCalls++; return false })
		return false
	})
	m.Dispatch(TypeAppReady, nil)
	assert.Zero(t, lateCalls, "handlers added mid-dispatch see only later events")

	m.Dispatch(TypeAppReady, nil)
	assert.Equal(t, 1, lateCalls)
}

func TestDispatchWithoutSubscribers(t *testing.T) {
	m := NewManager()
	m.Dispatch(TypeSongModified, nil) // must not panic
}
