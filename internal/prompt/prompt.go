// Package prompt loads prompt templates from files with hardcoded
// fallbacks. Template loading never fails a request: a missing or
// unreadable file yields the fallback text.
package prompt

import (
	"os"
	"path/filepath"
	"strings"
)

// Store resolves prompt templates from a directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load returns the template in filename, or fallback when the file is
// missing or unreadable.
func (s *Store) Load(filename, fallback string) string {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil || len(data) == 0 {
		return fallback
	}
	return string(data)
}

// Render substitutes {key} placeholders in the template.
func Render(template string, vars map[string]string) string {
	out := template
	for k, v := range vars {
		out = strings.ReplaceAll(out, "{"+k+"}", v)
	}
	return out
}
