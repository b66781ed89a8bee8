// Package alias resolves raw author logins to configured display names.
package alias

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Map is a fixed login-to-display-name mapping, loaded once at startup and
// never mutated.
type Map map[string]string

// Load reads a YAML file of `login: display name` pairs.
func Load(path string) (Map, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read aliases file: %w", err)
	}

	m := Map{}
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse aliases file %s: %w", path, err)
	}
	return m, nil
}

// Resolve returns the configured display name, or the login itself when no
// alias exists.
func (m Map) Resolve(login string) string {
	if name, ok := m[login]; ok && name != "" {
		return name
	}
	return login
}
