package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lums/lums-timer/internal/clock"
	"github.com/lums/lums-timer/internal/config"
	"github.com/lums/lums-timer/internal/urgency"
)

const reportWidth = 60

// printAgenda writes a human readable or JSON description of a.
func printAgenda(w io.Writer, a *config.Agenda, jsonOutput bool) error {
	if jsonOutput {
		out, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}

	policy := urgency.NewPolicy(a.Config.YellowWarningTime)

	fmt.Fprintln(w, strings.Repeat("=", reportWidth))
	fmt.Fprintf(w, "AGENDA %s\n", a.Path)
	fmt.Fprintln(w, strings.Repeat("=", reportWidth))
	fmt.Fprintf(w, "Scaling: %d%%\n", a.Config.Scaling)
	fmt.Fprintf(w, "Announcement: %q\n\n", a.Config.Announcement())

	fmt.Fprintf(w, "%3s  %-6s  %-7s  %s\n", "#", "TIME", "YELLOW", "STAGE")
	for i, s := range a.Stages {
		timing, warn := " clock", "      -"
		if s.Duration > 0 {
			timing = clock.FormatDuration(s.Duration) + " "
			warn = fmt.Sprintf("%7s", clock.FormatDuration(policy.Threshold(s.Duration)))
		}
		fmt.Fprintf(w, "%3d  %-6s  %s  %s\n", i+1, timing, warn, s.Name)
	}
	fmt.Fprintln(w, strings.Repeat("-", reportWidth))
	fmt.Fprintf(w, "%d stages, %s of countdown\n", len(a.Stages), strings.TrimSpace(clock.FormatDuration(a.TotalDuration())))
	return nil
}

// findAgendas returns the agendas under root that decode, sorted by path.
func findAgendas(ctx context.Context, root string) []*config.Agenda {
	var found []*config.Agenda
	for path := range config.Discover(ctx, root) {
		a, err := config.Load(path)
		if err != nil {
			logrus.Debugf("skipping %s: %v", path, err)
			continue
		}
		found = append(found, a)
	}
	sort.Slice(found, func(i, j int) bool { return found[i].Path < found[j].Path })
	return found
}

func printFound(w io.Writer, found []*config.Agenda) {
	if len(found) == 0 {
		fmt.Fprintln(w, "No agenda files found.")
		return
	}
	for _, a := range found {
		fmt.Fprintf(w, "%s\t%d stages\t%s\n", a.Path, len(a.Stages), strings.TrimSpace(clock.FormatDuration(a.TotalDuration())))
	}
}
