// Package config decodes agenda files: the display configuration plus the
// ordered list of stages.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/lums/lums-timer/internal/agenda"
	"github.com/lums/lums-timer/internal/validate"
)

const (
	// DefaultScaling is used when an agenda file leaves scaling out.
	DefaultScaling = 100
	// DefaultFile is read when no path is given on the command line.
	DefaultFile = "config.json"
)

var (
	ErrEmptyAgenda   = errors.New("agenda has no stages")
	ErrUnknownFormat = errors.New("unknown agenda file format")
	ErrTooLarge      = errors.New("agenda file too large")
)

// Config is the display configuration. It is read once and never changed.
type Config struct {
	Scaling int `json:"scaling" yaml:"scaling" validate:"gte=1,lte=1000"`
	// AnnouncementText is nil when the file has no usable announcement_text.
	AnnouncementText *string `json:"announcement_text,omitempty" yaml:"announcement_text,omitempty"`
	// YellowWarningTime maps a stage duration in seconds, as a decimal string,
	// to the remaining seconds at which the countdown turns yellow.
	YellowWarningTime map[string]int `json:"yellow_warning_time,omitempty" yaml:"yellow_warning_time,omitempty" validate:"dive,keys,number,endkeys,gte=0"`
}

// Announcement returns the configured announcement text or the default.
func (c Config) Announcement() string {
	if c.AnnouncementText == nil || *c.AnnouncementText == "" {
		return agenda.DefaultAnnouncement
	}
	return *c.AnnouncementText
}

// WarningThreshold returns the yellow threshold for a stage of duration
// seconds, or false when none is configured.
func (c Config) WarningThreshold(duration int) (int, bool) {
	v, ok := c.YellowWarningTime[strconv.Itoa(duration)]
	return v, ok
}

// Agenda is a decoded agenda file.
type Agenda struct {
	Path   string         `json:"path,omitempty" yaml:"-"`
	Config Config         `json:"config" yaml:"config"`
	Stages []agenda.Stage `json:"stages" yaml:"stages" validate:"required,min=1,dive"`
}

// TotalDuration sums the durations of all stages in seconds.
func (a *Agenda) TotalDuration() int {
	total := 0
	for _, s := range a.Stages {
		total += s.Duration
	}
	return total
}

// rawConfig tolerates malformed optional keys; they are checked field by field
// in resolve.
type rawConfig struct {
	Scaling           int `json:"scaling" yaml:"scaling"`
	AnnouncementText  any `json:"announcement_text" yaml:"announcement_text"`
	YellowWarningTime any `json:"yellow_warning_time" yaml:"yellow_warning_time"`
}

func (r rawConfig) resolve() Config {
	c := Config{Scaling: r.Scaling}
	if c.Scaling == 0 {
		c.Scaling = DefaultScaling
	}

	switch v := r.AnnouncementText.(type) {
	case nil:
	case string:
		c.AnnouncementText = &v
	default:
		logrus.Warnf("announcement_text is not a string (%T); using %q", v, agenda.DefaultAnnouncement)
	}

	c.YellowWarningTime = resolveThresholds(r.YellowWarningTime)
	return c
}

// resolveThresholds keeps the entries with an unsigned integer key and a
// non-negative whole number value. Everything else falls back to the default
// threshold at lookup time.
func resolveThresholds(raw any) map[string]int {
	entries := map[string]any{}
	switch m := raw.(type) {
	case nil:
		return nil
	case map[string]any:
		entries = m
	case map[any]any:
		for k, v := range m {
			entries[fmt.Sprint(k)] = v
		}
	default:
		logrus.Warnf("yellow_warning_time is not a mapping (%T); using defaults", raw)
		return nil
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]int, len(entries))
	for _, k := range keys {
		n, ok := wholeNumber(entries[k])
		if validate.Var(k, "number") != nil || !ok || validate.Var(n, "gte=0") != nil {
			logrus.Warnf("ignoring yellow_warning_time entry %q: %v", k, entries[k])
			continue
		}
		out[k] = n
	}
	return out
}

func wholeNumber(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
