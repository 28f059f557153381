package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/lums/lums-timer/internal/agenda"
	"github.com/lums/lums-timer/internal/validate"
)

const maxFileSize = 10 * 1024 * 1024

// Load reads and decodes the agenda file at path.
func Load(path string) (*Agenda, error) {
	logrus.Debug("Loading agenda file from: ", path)
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	a, err := Parse(path, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Parse decodes data, choosing JSON or YAML by the extension of path.
//
// Three layouts are accepted: a two element list [config, stages], the same
// list under a "py/tuple" key, and a mapping with "config" and "stages" keys.
func Parse(path string, data []byte) (*Agenda, error) {
	var (
		raw    rawConfig
		stages []agenda.Stage
		err    error
	)
	switch {
	case isJSONFile(path):
		raw, stages, err = decodeJSON(data)
	case isYAMLFile(path):
		raw, stages, err = decodeYAML(data)
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownFormat, filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, ErrEmptyAgenda
	}

	a := &Agenda{Path: path, Config: raw.resolve(), Stages: stages}
	if err := validate.Struct(a); err != nil {
		return nil, fmt.Errorf("invalid agenda: %w", err)
	}
	return a, nil
}

// readFile reads a file, refusing anything over maxFileSize.
func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, info.Size(), maxFileSize)
	}
	return io.ReadAll(io.LimitReader(file, maxFileSize))
}

func decodeJSON(data []byte) (rawConfig, []agenda.Stage, error) {
	var raw rawConfig
	if err := detectCaseInsensitiveKeyCollisions(data); err != nil {
		return raw, nil, fmt.Errorf("case-insensitive key collision detected: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return raw, nil, ErrEmptyAgenda
	}

	var parts []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &parts); err != nil {
			return raw, nil, err
		}
	case '{':
		var doc struct {
			Config json.RawMessage   `json:"config"`
			Stages json.RawMessage   `json:"stages"`
			Tuple  []json.RawMessage `json:"py/tuple"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return raw, nil, err
		}
		if doc.Tuple != nil {
			parts = doc.Tuple
			break
		}
		parts = []json.RawMessage{doc.Config, doc.Stages}
	default:
		return raw, nil, fmt.Errorf("%w: expected a list or an object", ErrUnknownFormat)
	}

	if len(parts) != 2 {
		return raw, nil, fmt.Errorf("%w: expected [config, stages], got %d elements", ErrUnknownFormat, len(parts))
	}
	if len(parts[0]) > 0 {
		if err := json.Unmarshal(parts[0], &raw); err != nil {
			return raw, nil, fmt.Errorf("config: %w", err)
		}
	}
	var stages []agenda.Stage
	if len(parts[1]) > 0 {
		if err := json.Unmarshal(parts[1], &stages); err != nil {
			return raw, nil, fmt.Errorf("stages: %w", err)
		}
	}
	return raw, stages, nil
}

func decodeYAML(data []byte) (rawConfig, []agenda.Stage, error) {
	var raw rawConfig
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return raw, nil, err
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return raw, nil, ErrEmptyAgenda
		}
		doc = doc.Content[0]
	}

	var parts []*yaml.Node
	switch doc.Kind {
	case yaml.SequenceNode:
		parts = doc.Content
	case yaml.MappingNode:
		var m struct {
			Config yaml.Node   `yaml:"config"`
			Stages yaml.Node   `yaml:"stages"`
			Tuple  []yaml.Node `yaml:"py/tuple"`
		}
		if err := doc.Decode(&m); err != nil {
			return raw, nil, err
		}
		if m.Tuple != nil {
			for i := range m.Tuple {
				parts = append(parts, &m.Tuple[i])
			}
			break
		}
		parts = []*yaml.Node{&m.Config, &m.Stages}
	case 0:
		return raw, nil, ErrEmptyAgenda
	default:
		return raw, nil, fmt.Errorf("%w: expected a list or a mapping", ErrUnknownFormat)
	}

	if len(parts) != 2 {
		return raw, nil, fmt.Errorf("%w: expected [config, stages], got %d elements", ErrUnknownFormat, len(parts))
	}
	if parts[0].Kind != 0 {
		if err := parts[0].Decode(&raw); err != nil {
			return raw, nil, fmt.Errorf("config: %w", err)
		}
	}
	var stages []agenda.Stage
	if parts[1].Kind != 0 {
		if err := parts[1].Decode(&stages); err != nil {
			return raw, nil, fmt.Errorf("stages: %w", err)
		}
	}
	return raw, stages, nil
}

// detectCaseInsensitiveKeyCollisions rejects JSON whose object keys differ only
// by letter case, since encoding/json would silently merge them.
func detectCaseInsensitiveKeyCollisions(data []byte) error {
	var res any
	// Syntax errors are left to the main decode, which reports them better.
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&res); err != nil {
		return nil
	}
	return checkKeys(res, "")
}

func checkKeys(obj any, path string) error {
	switch v := obj.(type) {
	case map[string]any:
		seen := make(map[string]string, len(v))
		for key, value := range v {
			lower := strings.ToLower(key)
			if first, ok := seen[lower]; ok {
				return fmt.Errorf("case-insensitive key collision at '%s': '%s' and '%s'", joinPath(path, key), key, first)
			}
			seen[lower] = key
			if err := checkKeys(value, joinPath(path, key)); err != nil {
				return err
			}
		}
	case []any:
		for i, item := range v {
			if err := checkKeys(item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func isJSONFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
