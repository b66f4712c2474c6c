package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultBitrate is the bitrate of exported MP3 files
const DefaultBitrate = "128k"

// Decoder turns synthesized audio bytes into a streamer.
// The caller must close the returned streamer.
type Decoder interface {
	Decode(data []byte) (beep.StreamSeekCloser, beep.Format, error)
}

// MP3Decoder decodes MP3 data
type MP3Decoder struct{}

// Decode implements Decoder
func (MP3Decoder) Decode(data []byte) (beep.StreamSeekCloser, beep.Format, error) {
	if len(data) == 0 {
		return nil, beep.Format{}, fmt.Errorf("empty audio data")
	}
	s, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("mp3 decode failed: %w", err)
	}
	return s, format, nil
}

// Exporter serializes a buffer into a compressed file
type Exporter interface {
	Export(ctx context.Context, buf *Buffer, w io.Writer) error
	// Extension returns the file extension of the produced format, e.g. ".mp3"
	Extension() string
}

// FFmpegExporter encodes MP3 by piping a temporary WAV file through ffmpeg
type FFmpegExporter struct {
	Path    string // ffmpeg binary, "ffmpeg" when empty
	Bitrate string // e.g. "128k"
	TempDir string // os.TempDir() when empty
}

// NewFFmpegExporter creates an exporter with the given binary and bitrate
func NewFFmpegExporter(path, bitrate string) *FFmpegExporter {
	return &FFmpegExporter{Path: path, Bitrate: bitrate}
}

// CheckInstalled verifies that the ffmpeg binary can be run
func (e *FFmpegExporter) CheckInstalled() error {
	if err := exec.Command(e.path(), "-version").Run(); err != nil {
		return fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}
	return nil
}

// Extension implements Exporter
func (e *FFmpegExporter) Extension() string { return ".mp3" }

// Export implements Exporter
func (e *FFmpegExporter) Export(ctx context.Context, buf *Buffer, w io.Writer) error {
	wavFile, err := writeTempWAV(e.TempDir, buf)
	if err != nil {
		return err
	}
	defer os.Remove(wavFile)

	bitrate := e.Bitrate
	if bitrate == "" {
		bitrate = DefaultBitrate
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.path(),
		"-hide_banner", "-loglevel", "error",
		"-i", wavFile,
		"-vn",
		"-ac", strconv.Itoa(buf.Format().NumChannels),
		"-codec:a", "libmp3lame",
		"-b:a", bitrate,
		"-f", "mp3",
		"pipe:1",
	)
	cmd.Stdout = w
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

func (e *FFmpegExporter) path() string {
	if e.Path == "" {
		return "ffmpeg"
	}
	return e.Path
}

// WAVExporter writes uncompressed WAV, for environments without ffmpeg
type WAVExporter struct {
	TempDir string
}

// Extension implements Exporter
func (e *WAVExporter) Extension() string { return ".wav" }

// Export implements Exporter
func (e *WAVExporter) Export(ctx context.Context, buf *Buffer, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	wavFile, err := writeTempWAV(e.TempDir, buf)
	if err != nil {
		return err
	}
	defer os.Remove(wavFile)

	f, err := os.Open(wavFile)
	if err != nil {
		return fmt.Errorf("failed to open wav file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to copy wav data: %w", err)
	}
	return nil
}

// writeTempWAV encodes buf into a new temporary file and returns its name.
// The caller removes the file.
func writeTempWAV(dir string, buf *Buffer) (string, error) {
	f, err := os.CreateTemp(dir, "linguabird-*.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	name := f.Name()

	if err := wav.Encode(f, buf.Streamer(), buf.Format()); err != nil {
		f.Close()
		os.Remove(name)
		return "", fmt.Errorf("wav encode failed: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return name, nil
}
