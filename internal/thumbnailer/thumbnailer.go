package thumbnailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os/exec"
	"strconv"
	"sync"
	"time"

	_ "image/png" // ffmpeg emits PNG frames on the image2pipe muxer

	"github.com/disintegration/imaging"

	"media-server/internal/logging"
	"media-server/internal/metrics"
)

const (
	// DefaultOffsetSeconds is how far into the video the frame is pulled.
	DefaultOffsetSeconds = 10
	// DefaultTimeout bounds a single ffmpeg invocation.
	DefaultTimeout = 30 * time.Second

	// thumbnailWidth is the output width; height preserves aspect ratio.
	thumbnailWidth = 320
	jpegQuality    = 85
)

// Status classifies the outcome of an extraction attempt.
type Status int

const (
	// StatusSuccess means the thumbnail was written to the destination.
	StatusSuccess Status = iota
	// StatusUnavailable means the external tool is not installed.
	StatusUnavailable
	// StatusFailed means the tool ran but produced no usable frame.
	StatusFailed
	// StatusTimedOut means the invocation exceeded the configured bound.
	StatusTimedOut
)

// String returns the metric label for a status.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	case StatusTimedOut:
		return "timeout"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Result describes one extraction attempt. Ordinary extraction failure
// is a Result, never a Go error: failing to thumbnail is an expected,
// non-fatal outcome.
type Result struct {
	Status Status
	Data   []byte // encoded JPEG, set on success
	Detail error  // underlying cause, for operator logs only
}

// OK reports whether the extraction produced a thumbnail.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

// Extractor pulls a single still frame out of a video file by invoking
// ffmpeg as a subprocess.
type Extractor struct {
	command       string
	offsetSeconds int
	timeout       time.Duration

	probeOnce sync.Once
	available bool
}

// New creates an Extractor. offsetSeconds and timeout fall back to the
// package defaults when non-positive.
func New(offsetSeconds int, timeout time.Duration) *Extractor {
	if offsetSeconds <= 0 {
		offsetSeconds = DefaultOffsetSeconds
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{
		command:       "ffmpeg",
		offsetSeconds: offsetSeconds,
		timeout:       timeout,
	}
}

// Available reports whether the external tool can be invoked. The probe
// runs once and is cached; it has no side effects.
func (e *Extractor) Available() bool {
	e.probeOnce.Do(func() {
		path, err := exec.LookPath(e.command)
		if err != nil {
			logging.Warn("%s not found; thumbnail generation disabled", e.command)
			return
		}
		if err := exec.Command(e.command, "-version").Run(); err != nil {
			logging.Warn("%s -version failed: %v; thumbnail generation disabled", e.command, err)
			return
		}
		logging.Debug("Using %s at %s", e.command, path)
		e.available = true
	})
	return e.available
}

// Extract pulls one frame at the configured offset from sourcePath,
// scales it to 320px width preserving aspect ratio, and returns the
// encoded JPEG bytes. The caller owns persistence.
//
// An offset past the end of the media is an ordinary failure, not a
// defect; ffmpeg exits non-zero or emits no frame and the result is
// StatusFailed.
func (e *Extractor) Extract(ctx context.Context, sourcePath string) Result {
	start := time.Now()
	res := e.extract(ctx, sourcePath)

	metrics.ThumbnailExtractionsTotal.WithLabelValues(res.Status.String()).Inc()
	if res.Status != StatusUnavailable {
		metrics.ThumbnailExtractionDuration.Observe(time.Since(start).Seconds())
	}

	switch res.Status {
	case StatusSuccess:
		logging.Debug("Thumbnail extracted from %s (%v)", sourcePath, time.Since(start))
	case StatusTimedOut:
		logging.Warn("Thumbnail extraction timed out after %v for %s", e.timeout, sourcePath)
	case StatusFailed:
		logging.Warn("Thumbnail extraction failed for %s: %v", sourcePath, res.Detail)
	}
	return res
}

func (e *Extractor) extract(ctx context.Context, sourcePath string) Result {
	if !e.Available() {
		return Result{Status: StatusUnavailable}
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, e.command,
		"-y",
		"-ss", strconv.Itoa(e.offsetSeconds),
		"-i", sourcePath,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Killing ffmpeg at the deadline is not enough: a child it spawned
	// can keep the pipes open and Run would block until that child
	// exits. WaitDelay forces the pipes closed shortly after cancel.
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{Status: StatusTimedOut, Detail: err}
		}
		return Result{Status: StatusFailed, Detail: fmt.Errorf("%s failed: %w, stderr: %s", e.command, err, stderr.String())}
	}

	if stdout.Len() == 0 {
		return Result{Status: StatusFailed, Detail: fmt.Errorf("%s produced no output for %s", e.command, sourcePath)}
	}

	img, _, err := image.Decode(&stdout)
	if err != nil {
		return Result{Status: StatusFailed, Detail: fmt.Errorf("failed to decode extracted frame: %w", err)}
	}

	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)

	var out bytes.Buffer
	if err := imaging.Encode(&out, thumb, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return Result{Status: StatusFailed, Detail: fmt.Errorf("failed to encode thumbnail: %w", err)}
	}

	return Result{Status: StatusSuccess, Data: out.Bytes()}
}
