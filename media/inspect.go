// Package media runs local checks on a file before it is handed to the video service.
package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotVideo is returned for files that neither sniff as video nor carry a video extension.
var ErrNotVideo = errors.New("not a video file")

var videoExtensions = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mov":  "video/quicktime",
	".flv":  "video/x-flv",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".wmv":  "video/x-ms-wmv",
	".mpg":  "video/mpeg",
}

// Info describes a local upload candidate.
type Info struct {
	Path        string
	Name        string
	Size        int64
	ContentType string
}

// IsVideoFile checks if the given file extension is one of known video file extensions
func IsVideoFile(path string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Inspect stats and sniffs path. Sniffing wins over the extension when it
// recognizes a video container; otherwise a known extension is enough.
func Inspect(path string) (*Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("file not accessible: %w", err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("detect content type: %w", err)
	}

	contentType := ""
	switch {
	case isVideoMIME(mt):
		contentType = mt.String()
	case IsVideoFile(path):
		contentType = videoExtensions[strings.ToLower(filepath.Ext(path))]
	default:
		return nil, fmt.Errorf("%w: %s (%s)", ErrNotVideo, filepath.Base(path), mt.String())
	}

	return &Info{
		Path:        path,
		Name:        filepath.Base(path),
		Size:        fi.Size(),
		ContentType: contentType,
	}, nil
}

func isVideoMIME(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "video/") {
			return true
		}
	}
	return false
}
