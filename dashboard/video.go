package dashboard

import (
	"fmt"
	"io"
	"strings"
)

// Video is a single record of the remote collection. Filename is the
// server-assigned identity.
type Video struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name,omitempty"`
	Size         int64  `json:"size"`
	URL          string `json:"url,omitempty"`
}

// DisplayName returns the name the video was uploaded with, falling back to the filename.
func (v Video) DisplayName() string {
	if v.OriginalName != "" {
		return v.OriginalName
	}
	return v.Filename
}

// SizeMB formats the size the way the video list shows it.
func (v Video) SizeMB() string {
	return FormatMB(v.Size)
}

// FormatMB renders bytes as megabytes with two decimals.
func FormatMB(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/1024/1024)
}

// UploadFile is one local file handed to the video service.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Filter returns the videos whose filename contains query, ignoring case.
// Only the empty query returns the whole collection; whitespace is matched
// like any other character. Order is preserved and the input is never modified.
func Filter(videos []Video, query string) []Video {
	q := strings.ToLower(query)
	view := make([]Video, 0, len(videos))
	for _, v := range videos {
		if q == "" || strings.Contains(strings.ToLower(v.Filename), q) {
			view = append(view, v)
		}
	}
	return view
}

// Filenames lists the identities of videos in order.
func Filenames(videos []Video) []string {
	names := make([]string, len(videos))
	for i, v := range videos {
		names[i] = v.Filename
	}
	return names
}

// TotalSize sums the size of every video.
func TotalSize(videos []Video) int64 {
	var total int64
	for _, v := range videos {
		total += v.Size
	}
	return total
}

// dedupe drops repeated filenames, keeping the first occurrence.
func dedupe(videos []Video) (unique []Video, dropped []string) {
	seen := make(map[string]struct{}, len(videos))
	unique = make([]Video, 0, len(videos))
	for _, v := range videos {
		if _, ok := seen[v.Filename]; ok {
			dropped = append(dropped, v.Filename)
			continue
		}
		seen[v.Filename] = struct{}{}
		unique = append(unique, v)
	}
	return unique, dropped
}
