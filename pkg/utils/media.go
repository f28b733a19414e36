package utils

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// NormalizeImage crops the image to a centered 1080x1080 square and
// recompresses it as PNG.
func NormalizeImage(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	img = imaging.Fill(img, 1080, 1080, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("error encoding image: %w", err)
	}
	return buf.Bytes(), nil
}

// TranscodeVideo re-encodes the clip through a fixed ffmpeg profile so the
// output plays on every platform we post to.
func TranscodeVideo(ctx context.Context, ffmpegPath string, data []byte) ([]byte, error) {
	dir, err := os.MkdirTemp("", "contentpilot-video-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "in.mp4")
	out := filepath.Join(dir, "out.mp4")
	if err := os.WriteFile(in, data, 0o600); err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-y", "-i", in,
		"-c:v", "libx264", "-crf", "22", "-preset", "medium",
		"-c:a", "aac", "-b:a", "128k",
		"-movflags", "+faststart",
		out,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, stderr.String())
	}

	return os.ReadFile(out)
}
