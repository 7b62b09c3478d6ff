// Package ui renders run progress and summaries on the terminal.
package ui

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// IsInteractive reports whether stdout is a terminal. Live progress bars
// are disabled for piped or redirected output.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ProgressBar shows per-item run progress. On a TTY it renders a pterm
// bar; otherwise it falls back to one plain line per item so logs stay
// grep-able.
type ProgressBar struct {
	bar         *pterm.ProgressbarPrinter
	interactive bool
}

// NewProgressBar starts a bar over 100 percent points.
func NewProgressBar(title string) *ProgressBar {
	pb := &ProgressBar{interactive: IsInteractive()}
	if pb.interactive {
		bar, _ := pterm.DefaultProgressbar.WithTotal(100).WithTitle(title).Start()
		bar.BarStyle = &pterm.Style{pterm.FgLightBlue, pterm.BgDefault}
		bar.TitleStyle = &pterm.Style{pterm.FgLightCyan, pterm.Bold}
		pb.bar = bar
	}
	return pb
}

// Advance moves the bar to percent and shows message as the current item.
func (pb *ProgressBar) Advance(percent int, message string) {
	if !pb.interactive {
		fmt.Printf("[%3d%%] %s\n", percent, message)
		return
	}
	pb.bar.UpdateTitle(message)
	if delta := percent - pb.bar.Current; delta > 0 {
		pb.bar.Add(delta)
	}
}

// Fail prints a per-item failure notice without disturbing the bar.
func (pb *ProgressBar) Fail(message string) {
	if !pb.interactive {
		fmt.Println("error: " + message)
		return
	}
	pterm.Error.Println(message)
}

// Finish stops the bar.
func (pb *ProgressBar) Finish() {
	if pb.interactive {
		_, _ = pb.bar.Stop()
	}
}
