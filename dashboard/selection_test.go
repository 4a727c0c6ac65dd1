package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func videosNamed(names ...string) []Video {
	videos := make([]Video, len(names))
	for i, n := range names {
		videos[i] = Video{Filename: n}
	}
	return videos
}

func TestSelectionToggle(t *testing.T) {
	var s Selection

	s.Toggle("a.mp4")
	require.True(t, s.Has("a.mp4"))
	require.Equal(t, 1, s.Len())

	s.Toggle("a.mp4")
	assert.False(t, s.Has("a.mp4"))
	assert.Zero(t, s.Len())
}

func TestSelectionToggleSelectAll(t *testing.T) {
	view := videosNamed("a.mp4", "b.mp4", "c.mp4")

	tests := []struct {
		name     string
		initial  []string
		expected []string
	}{
		{"Empty selection selects all", nil, []string{"a.mp4", "b.mp4", "c.mp4"}},
		{"Partial selection selects all", []string{"b.mp4"}, []string{"a.mp4", "b.mp4", "c.mp4"}},
		{"Full selection clears", []string{"a.mp4", "b.mp4", "c.mp4"}, []string{}},
		{"Selection outside view is replaced", []string{"z.mp4"}, []string{"a.mp4", "b.mp4", "c.mp4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Selection
			for _, n := range tt.initial {
				s.Toggle(n)
			}
			s.ToggleSelectAll(view)
			assert.Equal(t, tt.expected, s.Names())
		})
	}
}

func TestSelectionToggleSelectAllTwice(t *testing.T) {
	view := videosNamed("x.mp4", "y.mp4")
	var s Selection
	s.Toggle("x.mp4")

	s.ToggleSelectAll(view)
	require.Equal(t, 2, s.Len(), "expected all selected, got %v", s.Names())
	s.ToggleSelectAll(view)
	assert.Zero(t, s.Len(), "expected empty selection, got %v", s.Names())
}

func TestSelectionEmptyView(t *testing.T) {
	var s Selection
	s.Toggle("a.mp4")

	s.ToggleSelectAll(nil)
	assert.Zero(t, s.Len(), "select-all on an empty view should leave nothing selected")
	assert.False(t, s.AllSelected(nil))
}

func TestSelectionRetain(t *testing.T) {
	var s Selection
	for _, n := range []string{"a.mp4", "b.mp4", "c.mp4"} {
		s.Toggle(n)
	}
	s.Retain(func(name string) bool { return name != "b.mp4" })

	assert.Equal(t, []string{"a.mp4", "c.mp4"}, s.Names())
}
