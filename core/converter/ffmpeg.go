package converter

import (
	"bytes"
	"errors"
	"os/exec"
	"strconv"

	"go.uber.org/zap"
)

// FFmpegAdapter spawns the external encoder synchronously. It is pure
// infrastructure: no retries, no timeout; a failed invocation is reported
// up unchanged. Exit code 0 is the only success signal.
type FFmpegAdapter struct {
	binaryPath string
	logger     *zap.Logger
}

// NewFFmpegAdapter creates an adapter for the configured encoder binary.
// binaryPath may be a bare name resolved through PATH or an absolute path.
func NewFFmpegAdapter(binaryPath string, logger *zap.Logger) *FFmpegAdapter {
	return &FFmpegAdapter{binaryPath: binaryPath, logger: logger}
}

// buildArgs assembles the fixed invocation: H.264 video at the given
// CRF/preset, AAC audio at 128 kbps, force-overwrite of the output.
func buildArgs(inputPath, outputPath string, preset VideoPreset) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-c:v", "libx264",
		"-crf", strconv.Itoa(preset.CRF),
		"-preset", preset.Preset,
		"-c:a", "aac",
		"-b:a", "128k",
		outputPath,
	}
}

// Transcode runs the encoder to completion and blocks the calling
// goroutine. The runner's worker hosts this call, never the caller thread.
func (fa *FFmpegAdapter) Transcode(inputPath, outputPath string, preset VideoPreset) error {
	args := buildArgs(inputPath, outputPath, preset)

	cmd := exec.Command(fa.binaryPath, args...)
	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf
	hideConsoleWindow(cmd)

	fa.logger.Debug("invoking encoder",
		zap.String("binary", fa.binaryPath),
		zap.Strings("args", args))

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if isToolMissing(err) {
		return newConvertError(ErrorTypeToolUnavailable,
			"encoder not found; install ffmpeg and make sure it is on PATH", err)
	}

	diagnostic := truncateDiagnostic(stderrBuf.String())
	if diagnostic == "" {
		diagnostic = err.Error()
	}
	return newConvertError(ErrorTypeToolExecution, "encoder failed: "+diagnostic, err)
}

// isToolMissing distinguishes "binary unresolvable" from "binary ran and
// failed".
func isToolMissing(err error) bool {
	var execErr *exec.Error
	return errors.As(err, &execErr) || errors.Is(err, exec.ErrNotFound)
}
