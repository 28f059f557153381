//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lums/lums-timer/internal/agenda"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParse_Layouts(t *testing.T) {
	wantStages := []agenda.Stage{
		{Name: "Welcome", Duration: 0},
		{Name: "Keynote", Duration: 1800},
	}

	tests := []struct {
		name string
		path string
		data string
	}{
		{
			name: "json pair",
			path: "agenda.json",
			data: `[{"scaling": 90, "announcement_text": "Short break", "yellow_warning_time": {"1800": 300}},
				[{"name": "Welcome", "duration": 0}, {"name": "Keynote", "duration": 1800}]]`,
		},
		{
			name: "json py/tuple",
			path: "agenda.json",
			data: `{"py/tuple": [{"scaling": 90, "announcement_text": "Short break", "yellow_warning_time": {"1800": 300}},
				[{"name": "Welcome", "duration": 0}, {"name": "Keynote", "duration": 1800}]]}`,
		},
		{
			name: "json object",
			path: "agenda.JSON",
			data: `{"config": {"scaling": 90, "announcement_text": "Short break", "yellow_warning_time": {"1800": 300}},
				"stages": [{"name": "Welcome", "duration": 0}, {"name": "Keynote", "duration": 1800}]}`,
		},
		{
			name: "yaml object",
			path: "agenda.yaml",
			data: `
config:
  scaling: 90
  announcement_text: Short break
  yellow_warning_time:
    1800: 300
stages:
  - name: Welcome
    duration: 0
  - name: Keynote
    duration: 1800
`,
		},
		{
			name: "yaml pair",
			path: "agenda.yml",
			data: `
- scaling: 90
  announcement_text: Short break
  yellow_warning_time: {"1800": 300}
- - {name: Welcome, duration: 0}
  - {name: Keynote, duration: 1800}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := Parse(tt.path, []byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, wantStages, a.Stages)
			assert.Equal(t, 90, a.Config.Scaling)
			assert.Equal(t, "Short break", a.Config.Announcement())
			got, ok := a.Config.WarningThreshold(1800)
			require.True(t, ok)
			assert.Equal(t, 300, got)
			assert.Equal(t, 1800, a.TotalDuration())
		})
	}
}

func TestParse_MissingOptionalValuesUseDefaults(t *testing.T) {
	a, err := Parse("a.json", []byte(`[{}, [{"name": "Talk", "duration": 600}]]`))
	require.NoError(t, err)

	assert.Equal(t, DefaultScaling, a.Config.Scaling)
	assert.Nil(t, a.Config.AnnouncementText)
	assert.Equal(t, agenda.DefaultAnnouncement, a.Config.Announcement())
	_, ok := a.Config.WarningThreshold(600)
	assert.False(t, ok)
}

func TestParse_MalformedOptionalValuesAreDropped(t *testing.T) {
	data := `[{"scaling": 100, "announcement_text": 42,
		"yellow_warning_time": {"300": 60, "600": "soon", "abc": 10, "900": -5, "1200": 90.5, "1500": 200}},
		[{"name": "Talk", "duration": 300}]]`

	a, err := Parse("a.json", []byte(data))
	require.NoError(t, err)
	assert.Equal(t, agenda.DefaultAnnouncement, a.Config.Announcement())
	assert.Equal(t, map[string]int{"300": 60, "1500": 200}, a.Config.YellowWarningTime)

	notMap, err := Parse("a.json", []byte(`[{"yellow_warning_time": [1, 2]}, [{"name": "Talk", "duration": 300}]]`))
	require.NoError(t, err)
	assert.Empty(t, notMap.Config.YellowWarningTime)
}

func TestParse_EmptyAnnouncementFallsBack(t *testing.T) {
	a, err := Parse("a.yaml", []byte("config:\n  announcement_text: \"\"\nstages:\n  - {name: Talk, duration: 60}\n"))
	require.NoError(t, err)
	require.NotNil(t, a.Config.AnnouncementText)
	assert.Equal(t, agenda.DefaultAnnouncement, a.Config.Announcement())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		data    string
		wantErr error
		errMsg  string
	}{
		{name: "unknown extension", path: "agenda.toml", data: `x = 1`, wantErr: ErrUnknownFormat},
		{name: "empty json", path: "a.json", data: "  ", wantErr: ErrEmptyAgenda},
		{name: "empty yaml", path: "a.yaml", data: "", wantErr: ErrEmptyAgenda},
		{name: "no stages", path: "a.json", data: `[{"scaling": 100}, []]`, wantErr: ErrEmptyAgenda},
		{name: "null stages", path: "a.json", data: `{"config": {}}`, wantErr: ErrEmptyAgenda},
		{name: "wrong arity", path: "a.json", data: `[{}, [], {}]`, wantErr: ErrUnknownFormat},
		{name: "scalar document", path: "a.json", data: `42`, wantErr: ErrUnknownFormat},
		{name: "yaml scalar document", path: "a.yaml", data: `hello`, wantErr: ErrUnknownFormat},
		{name: "negative duration", path: "a.json", data: `[{}, [{"name": "x", "duration": -1}]]`, errMsg: "invalid agenda"},
		{name: "scaling out of range", path: "a.json", data: `[{"scaling": -10}, [{"name": "x", "duration": 1}]]`, errMsg: "invalid agenda"},
		{name: "bad duration type", path: "a.json", data: `[{}, [{"name": "x", "duration": "ten"}]]`, errMsg: "stages"},
		{name: "case collision", path: "a.json", data: `[{"scaling": 1, "Scaling": 2}, [{"name": "x", "duration": 1}]]`, errMsg: "case-insensitive key collision"},
		{name: "syntax error", path: "a.json", data: `[{}, [`, errMsg: "unexpected end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.path, []byte(tt.data))
			require.Error(t, err)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			}
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", `[{"scaling": 100}, [{"name": "Talk", "duration": 60}]]`)

	a, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, a.Path)
	assert.Len(t, a.Stages, 1)

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))

	bad := writeFile(t, dir, "bad.json", `[{}, []]`)
	_, err = Load(bad)
	require.ErrorIs(t, err, ErrEmptyAgenda)
	assert.Contains(t, err.Error(), bad)
}

func TestReadFile_TooLarge(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "huge.json", strings.Repeat(" ", maxFileSize+1))

	_, err := readFile(path)
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.json", "[]")
	writeFile(t, dir, "nested/day2.yaml", "[]")
	writeFile(t, dir, "nested/day3.YML", "[]")
	writeFile(t, dir, "notes.txt", "hello")
	writeFile(t, dir, "node_modules/pkg/package.json", "{}")
	writeFile(t, dir, ".git/config.json", "{}")

	var got []string
	for p := range Discover(context.Background(), dir) {
		rel, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
	}
	sort.Strings(got)
	assert.Equal(t, []string{"main.json", "nested/day2.yaml", "nested/day3.YML"}, got)
}

func TestDiscover_Canceled(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 10; i++ {
		writeFile(t, dir, filepath.Join("d", strings.Repeat("x", i+1)+".json"), "[]")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	count := 0
	for range Discover(ctx, dir) {
		count++
	}
	assert.Less(t, count, 10)
}
