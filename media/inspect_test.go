package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimal ISO BMFF header with an mp4 brand
var mp4Header = []byte("\x00\x00\x00\x20ftypisom\x00\x00\x02\x00isomiso2avc1mp41")

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestIsVideoFile(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		// Valid video files
		{"MP4 lowercase", "test.mp4", true},
		{"MP4 uppercase", "test.MP4", true},
		{"WebM", "test.webm", true},
		{"MOV", "test.mov", true},
		{"FLV", "test.flv", true},
		{"MKV", "test.mkv", true},
		{"AVI", "test.avi", true},
		{"WMV", "test.wmv", true},
		{"MPG", "test.mpg", true},

		// With full path
		{"Full path MP4", "/path/to/video.mp4", true},
		{"Relative path", "./videos/test.mov", true},

		// Invalid files
		{"No extension", "test", false},
		{"Text file", "test.txt", false},
		{"Image file", "test.jpg", false},
		{"Audio file", "test.mp3", false},
		{"Empty string", "", false},

		// Edge cases
		{"Multiple dots", "test.video.mp4", true},
		{"Hidden file", ".hidden.mp4", true},
		{"Space in name", "test file.mp4", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsVideoFile(tt.path))
		})
	}
}

func TestInspectSniffedVideo(t *testing.T) {
	// No video extension, so only content sniffing can accept it
	path := writeFile(t, t.TempDir(), "recording.bin", append(mp4Header, make([]byte, 64)...))

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, "video/mp4", info.ContentType)
	assert.Equal(t, "recording.bin", info.Name)
	assert.Equal(t, int64(len(mp4Header)+64), info.Size)
}

func TestInspectExtensionFallback(t *testing.T) {
	path := writeFile(t, t.TempDir(), "demo_clip.mkv", []byte("not really matroska"))

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, "video/x-matroska", info.ContentType)
}

func TestInspectRejectsNonVideo(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.txt", []byte("shopping list"))

	_, err := Inspect(path)
	require.ErrorIs(t, err, ErrNotVideo)
	assert.Contains(t, err.Error(), "notes.txt")
}

func TestInspectRejectsDirectory(t *testing.T) {
	_, err := Inspect(t.TempDir())
	assert.Error(t, err)
}

func TestInspectMissingFile(t *testing.T) {
	_, err := Inspect(filepath.Join(t.TempDir(), "gone.mp4"))
	assert.Error(t, err)
}

func TestExtractFirstLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Single line", "moov atom not found", "moov atom not found"},
		{"Multi line", "first\nsecond\nthird", "first"},
		{"Leading whitespace", "\n  padded  \nrest", "padded"},
		{"Empty", "", "no additional information available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractFirstLine(tt.input))
		})
	}
}
