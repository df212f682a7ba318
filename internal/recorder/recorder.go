// Package recorder saves a live HLS stream to a file with ffmpeg.
package recorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"
)

const (
	// DefaultBinary is the recording program looked up on PATH.
	DefaultBinary = "ffmpeg"

	// DefaultGrace is how long the recorder may run past the requested
	// duration before it is killed.
	DefaultGrace = 30 * time.Second

	// DefaultExt is appended to output names that have no extension.
	DefaultExt = ".m4a"

	waitDelay = 5 * time.Second
)

var (
	// ErrTimeout is returned when the recorder outlives duration plus grace
	// and had to be killed.
	ErrTimeout = errors.New("recording timed out")

	// ErrRecording is returned when the recorder cannot start or exits
	// with an error.
	ErrRecording = errors.New("recording failed")
)

// Recorder runs the recording subprocess.
type Recorder struct {
	binary string
	grace  time.Duration
	log    *slog.Logger
}

// New returns a Recorder running binary. Empty binary means DefaultBinary;
// a non-positive grace means DefaultGrace.
func New(binary string, grace time.Duration, log *slog.Logger) *Recorder {
	if binary == "" {
		binary = DefaultBinary
	}
	if grace <= 0 {
		grace = DefaultGrace
	}
	return &Recorder{binary: binary, grace: grace, log: log}
}

// OutputPath returns name with DefaultExt appended when it has no extension.
func OutputPath(name string) string {
	if filepath.Ext(name) == "" {
		return name + DefaultExt
	}
	return name
}

// Args returns the recorder arguments for copying duration of the stream at
// url into output.
func Args(url, output string, duration time.Duration) []string {
	return []string{
		"-nostdin",
		"-y",
		"-loglevel", "warning",
		"-i", url,
		"-t", strconv.FormatFloat(duration.Seconds(), 'f', -1, 64),
		"-c", "copy",
		output,
	}
}

// Record copies duration of the stream at url into the file named output
// and returns the path written. The subprocess's stderr goes to a log file
// next to the output. If the subprocess is still running duration plus the
// grace period after it started, it is killed and ErrTimeout is returned.
func (r *Recorder) Record(ctx context.Context, url, output string, duration time.Duration) (string, error) {
	if url == "" {
		return "", fmt.Errorf("%w: empty stream url", ErrRecording)
	}
	if duration <= 0 {
		return "", fmt.Errorf("%w: duration must be positive, got %s", ErrRecording, duration)
	}

	out := OutputPath(output)
	logPath := out + ".log"
	logFile, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("%w: create log file: %v", ErrRecording, err)
	}
	defer logFile.Close()

	ctx, cancel := context.WithTimeout(ctx, duration+r.grace)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.binary, Args(url, out, duration)...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.WaitDelay = waitDelay

	r.log.Info("recording started",
		slog.String("output", out),
		slog.String("log", logPath),
		slog.Duration("duration", duration))

	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		r.log.Error("recording killed after timeout",
			slog.String("output", out),
			slog.Duration("elapsed", elapsed))
		return out, fmt.Errorf("%w after %s (see %s)", ErrTimeout, elapsed.Round(time.Second), logPath)
	}
	if err != nil {
		return out, fmt.Errorf("%w: %s: %v (see %s)", ErrRecording, r.binary, err, logPath)
	}

	r.log.Info("recording finished",
		slog.String("output", out),
		slog.Duration("elapsed", elapsed))
	return out, nil
}
