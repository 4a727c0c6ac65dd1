package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ValidateVideoIntegrity checks if a video file is corrupted or invalid
// Returns an error if the file is corrupted or cannot be read
func ValidateVideoIntegrity(ctx context.Context, filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}

	// Minimal probe, only validates the container structure
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", "--", filePath)
	output, err := cmd.CombinedOutput()

	if err != nil {
		outputStr := string(output)
		if strings.Contains(outputStr, "moov atom not found") {
			return fmt.Errorf("video file is corrupted (missing metadata): %s", extractFirstLine(outputStr))
		}
		if strings.Contains(outputStr, "Invalid data found") ||
			strings.Contains(outputStr, "corrupt") ||
			strings.Contains(outputStr, "truncated") ||
			strings.Contains(outputStr, "Invalid argument") {
			return fmt.Errorf("video file is corrupted or invalid: %s", extractFirstLine(outputStr))
		}

		return fmt.Errorf("ffprobe error: %w\nOutput: %s", err, extractFirstLine(outputStr))
	}

	return nil
}

// extractFirstLine extracts just the first line from a multi-line string
func extractFirstLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > 0 && strings.TrimSpace(lines[0]) != "" {
		return strings.TrimSpace(lines[0])
	}
	return "no additional information available"
}

// Details is what ffprobe reports about the first video stream.
type Details struct {
	Resolution string
	Codec      string
	Duration   time.Duration
}

var resolutionPattern = regexp.MustCompile(`^\d+x\d+$`)

// Probe reads resolution, codec and duration with ffprobe.
func Probe(ctx context.Context, filePath string) (*Details, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-v", "error", "-select_streams", "v:0",
		"-show_entries", "stream=width,height,codec_name:format=duration",
		"-of", "default=noprint_wrappers=1", "--", filePath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s: %w\nffprobe output: %s", filePath, err, extractFirstLine(string(output)))
	}
	return parseProbeOutput(string(output))
}

// parseProbeOutput reads key=value lines as printed by ffprobe's default writer.
func parseProbeOutput(output string) (*Details, error) {
	fields := map[string]string{}
	for _, line := range strings.Split(output, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		// first stream wins when ffprobe prints several
		if _, seen := fields[key]; !seen {
			fields[key] = value
		}
	}

	details := &Details{Codec: fields["codec_name"]}
	if details.Codec == "" {
		return nil, fmt.Errorf("could not detect video codec")
	}

	resolution := fields["width"] + "x" + fields["height"]
	if !resolutionPattern.MatchString(resolution) {
		return nil, fmt.Errorf("invalid resolution format: %s", resolution)
	}
	details.Resolution = resolution

	if raw := fields["duration"]; raw != "" && raw != "N/A" {
		secs, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse duration: %w", err)
		}
		details.Duration = time.Duration(secs * float64(time.Second))
	}

	return details, nil
}
