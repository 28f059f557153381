package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:gochecknoglobals // test binary path is set in TestMain
var testBinaryPath string

// TestMain builds the CLI binary once for the entire package and reuses it.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "lums-timer-test-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1) //nolint:gocritic // Mkdir failed, nothing to cleanup
	}

	bin := filepath.Join(dir, "lums-timer-test")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to build test binary: %v\nOutput: %s\n", err, string(out))
		os.RemoveAll(dir)
		os.Exit(1) //nolint:gocritic // Binary failed, nothing to cleanup
	}
	testBinaryPath = bin

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func buildTestBinary(t *testing.T) string {
	if testBinaryPath == "" {
		t.Fatalf("test binary not built")
	}
	return testBinaryPath
}

func testdataPath(name string) string {
	return filepath.Join("..", "..", "testdata", name)
}

func TestCLI_HelpOutput(t *testing.T) {
	binary := buildTestBinary(t)

	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{
			name: "root help",
			args: []string{"--help"},
			contains: []string{
				"lums-timer",
				"countdown kiosk",
				"CONFIG_FILE",
				"check",
				"find",
				"--log-file",
				"--verbose",
			},
		},
		{
			name:     "check help",
			args:     []string{"check", "--help"},
			contains: []string{"Validate an agenda", "--json", "--verbose"},
		},
		{
			name:     "find help",
			args:     []string{"find", "--help"},
			contains: []string{"DIR", "decodes as an agenda"},
		},
		{
			name:     "version",
			args:     []string{"--version"},
			contains: []string{"dev", "commit: none", "date: unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := exec.Command(binary, tt.args...).CombinedOutput()
			require.NoError(t, err)
			for _, expected := range tt.contains {
				assert.Contains(t, string(output), expected)
			}
		})
	}
}

func TestCLI_Check(t *testing.T) {
	binary := buildTestBinary(t)

	out, err := exec.Command(binary, "check", testdataPath("agenda.json")).Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "Panel discussion")
	assert.Contains(t, string(out), `Announcement: "Short announcement"`)
	assert.Contains(t, string(out), "5 stages, 80:00 of countdown")

	out, err = exec.Command(binary, "check", "--json", testdataPath("agenda.yaml")).Output()
	require.NoError(t, err)
	var decoded struct {
		Config struct {
			Scaling           int            `json:"scaling"`
			YellowWarningTime map[string]int `json:"yellow_warning_time"`
		} `json:"config"`
		Stages []struct {
			Name     string `json:"name"`
			Duration int    `json:"duration"`
		} `json:"stages"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, 120, decoded.Config.Scaling)
	assert.Equal(t, map[string]int{"600": 90}, decoded.Config.YellowWarningTime)
	assert.Len(t, decoded.Stages, 3)
}

func TestCLI_CheckFailures(t *testing.T) {
	binary := buildTestBinary(t)

	tests := []struct {
		name     string
		args     []string
		contains string
	}{
		{name: "empty agenda", args: []string{"check", testdataPath("empty_agenda.json")}, contains: "agenda has no stages"},
		{name: "missing file", args: []string{"check", filepath.Join(t.TempDir(), "nope.json")}, contains: "no such file"},
		{name: "unknown format", args: []string{"check", testdataPath("notes.txt")}, contains: "unknown agenda file format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := exec.Command(binary, tt.args...).CombinedOutput()
			require.Error(t, err)
			assert.Contains(t, string(out), tt.contains)
		})
	}
}

func TestCLI_Find(t *testing.T) {
	binary := buildTestBinary(t)

	out, err := exec.Command(binary, "find", filepath.Join("..", "..", "testdata")).Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "agenda.json")
	assert.Contains(t, string(out), "agenda.yaml")
	assert.NotContains(t, string(out), "empty_agenda.json")

	out, err = exec.Command(binary, "find", t.TempDir()).Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "No agenda files found.")
}

func TestCLI_KioskNeedsTerminal(t *testing.T) {
	binary := buildTestBinary(t)

	out, err := exec.Command(binary, testdataPath("agenda.json")).CombinedOutput()
	require.Error(t, err)
	assert.Contains(t, string(out), "needs a terminal")
}

func TestCLI_KioskDefaultsToConfigJSON(t *testing.T) {
	binary := buildTestBinary(t)

	cmd := exec.Command(binary)
	cmd.Dir = t.TempDir()
	out, err := cmd.CombinedOutput()
	require.Error(t, err)
	assert.Contains(t, string(out), "config.json")
}

func TestWithLogFile(t *testing.T) {
	errRun := errors.New("kiosk failed")

	t.Run("closes file when run fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kiosk.log")
		var f *os.File
		err := withLogFile(path, func(w io.Writer) error {
			var ok bool
			f, ok = w.(*os.File)
			require.True(t, ok)
			_, werr := io.WriteString(w, "started\n")
			require.NoError(t, werr)
			return errRun
		})
		require.ErrorIs(t, err, errRun)

		_, err = f.WriteString("after")
		require.ErrorIs(t, err, os.ErrClosed)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "started\n", string(data))
	})

	t.Run("no path passes nil writer", func(t *testing.T) {
		called := false
		err := withLogFile("", func(w io.Writer) error {
			called = true
			assert.Nil(t, w)
			return nil
		})
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("unopenable path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "kiosk.log")
		err := withLogFile(path, func(io.Writer) error {
			t.Fatal("fn must not run")
			return nil
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to open log file")
	})
}
