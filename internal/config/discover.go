package config

import (
	"context"
	"io/fs"
	"strings"

	"github.com/charlievieth/fastwalk"
)

const streamBufferSize = 64

//nolint:gochecknoglobals // immutable lookup table.
var skipDirs = []string{".git", ".hg", ".svn", "node_modules", "vendor", ".cache"}

// Discover walks root and streams paths of JSON and YAML files that may hold an
// agenda. The channel is closed when the walk completes or ctx is canceled.
// Callers decide which candidates actually decode.
func Discover(ctx context.Context, root string) <-chan string {
	out := make(chan string, streamBufferSize)
	go func() {
		defer close(out)
		conf := fastwalk.DefaultConfig
		_ = fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // Skip unreadable entries.
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if d.IsDir() {
				if path != root && isSkippedDir(d.Name()) {
					return fs.SkipDir
				}
				return nil
			}
			if isJSONFile(path) || isYAMLFile(path) {
				select {
				case out <- path:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		})
	}()
	return out
}

func isSkippedDir(name string) bool {
	for _, s := range skipDirs {
		if strings.EqualFold(name, s) {
			return true
		}
	}
	return false
}
