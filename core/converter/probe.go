package converter

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// probeTimeout bounds the version check only; conversions themselves run
// without a timeout.
const probeTimeout = 2 * time.Second

// ProbeResult reports whether the external encoder is usable, with a
// human-readable diagnostic when it is not.
type ProbeResult struct {
	Available  bool
	Path       string
	Diagnostic string
}

// ProbeEncoder resolves the encoder binary and confirms it executes. It is
// a boundary query used before a video run is offered to the caller; the
// batch runner itself never calls it.
func ProbeEncoder(binaryPath string) ProbeResult {
	resolved := binaryPath

	if !strings.ContainsRune(binaryPath, os.PathSeparator) {
		path, err := exec.LookPath(binaryPath)
		if err != nil {
			return ProbeResult{
				Available:  false,
				Diagnostic: "encoder " + binaryPath + " not found on PATH; install ffmpeg or set tools.ffmpeg_path",
			}
		}
		resolved = path
	} else if _, err := os.Stat(binaryPath); err != nil {
		return ProbeResult{
			Available:  false,
			Diagnostic: "encoder binary missing at " + binaryPath,
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := exec.CommandContext(ctx, resolved, "-version").Run(); err != nil {
		return ProbeResult{
			Available:  false,
			Path:       resolved,
			Diagnostic: filepath.Base(resolved) + " found but not executable: " + err.Error(),
		}
	}

	return ProbeResult{Available: true, Path: resolved}
}
