package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/lums/lums-timer/internal/config"
)

// RunOptions configures Run.
type RunOptions struct {
	// LogOutput receives log lines while the kiosk owns the screen. Nil
	// discards them.
	LogOutput io.Writer
	// Session tags log lines of this run.
	Session string
}

// Run shows the kiosk for agenda a on the alternate screen until the operator
// quits or ctx is canceled.
func Run(ctx context.Context, a *config.Agenda, opts RunOptions) error {
	applyColorProfilePreference()

	model := NewModel(a)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Keep log lines from corrupting the view.
	out := opts.LogOutput
	if out == nil {
		out = io.Discard
	}
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(out)
	defer logrus.SetOutput(prevOut)

	log := logrus.WithField("session", opts.Session)
	log.WithFields(logrus.Fields{
		"agenda": a.Path,
		"stages": len(a.Stages),
	}).Info("kiosk started")

	_, err := p.Run()
	log.Info("kiosk stopped")
	return err
}
