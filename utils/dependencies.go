package utils

import (
	"fmt"
	"os/exec"
	"runtime"
)

// ffprobe is not packaged on its own; every platform gets it with ffmpeg.
var ffprobeHints = map[string]string{
	"darwin":  "ffprobe ships with ffmpeg: brew install ffmpeg",
	"linux":   "ffprobe ships with ffmpeg: apt install ffmpeg, dnf install ffmpeg or pacman -S ffmpeg",
	"windows": "ffprobe ships with ffmpeg: winget install ffmpeg, then reopen the terminal",
}

const fallbackHint = "ffprobe ships with ffmpeg, see https://ffmpeg.org/download.html"

// ValidateProbeDependency checks that ffprobe, used by upload --verify, is in PATH.
// Run the upload without --verify to skip the check entirely.
func ValidateProbeDependency() error {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return fmt.Errorf("upload --verify needs ffprobe in PATH (%s)", ffprobeHint(runtime.GOOS))
	}
	return nil
}

func ffprobeHint(goos string) string {
	if hint, ok := ffprobeHints[goos]; ok {
		return hint
	}
	return fallbackHint
}
