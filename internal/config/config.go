package config

import (
	"os"
	"sort"
	"strings"

	"github.com/imdario/mergo"
	"github.com/probeherd/probeherd/internal/exception"
	"gopkg.in/yaml.v3"
)

// DefaultTimeoutSeconds applied by the runner when neither its own
// timeout nor the target specify one. Targets that omit
// timeout_seconds keep a zero value so a runner-level timeout can take
// effect.
const DefaultTimeoutSeconds = 10

// Target represents one credential/endpoint pair to probe. Targets are
// immutable once loaded.
type Target struct {
	ID             string            `yaml:"id"`
	Label          string            `yaml:"label,omitempty"`
	Host           string            `yaml:"host,omitempty"`
	Port           uint16            `yaml:"port,omitempty"`
	TimeoutSeconds int               `yaml:"timeout_seconds,omitempty"`
	Credentials    map[string]string `yaml:"credentials,omitempty"`
}

// Defaults represents inventory-wide values merged into each target
type Defaults struct {
	TimeoutSeconds int               `yaml:"timeout_seconds,omitempty"`
	Port           uint16            `yaml:"port,omitempty"`
	Credentials    map[string]string `yaml:"credentials,omitempty"`
}

// Inventory represents the data structure of our user provided yaml
// inventory file
type Inventory struct {
	Defaults Defaults `yaml:"defaults,omitempty"`
	Targets  []Target `yaml:"targets"`
}

// credential values the user was supposed to edit but didn't
var placeholderMarkers = []string{
	"PUT ",
	"CHANGEME",
	"CHANGE ME",
	"REPLACE",
	"YOUR ",
	"XXX",
}

// LoadInventory reads, validates, and normalizes the yaml inventory at
// confPath. Targets are returned sorted lexicographically by ID so
// repeated runs produce comparably ordered output.
func LoadInventory(confPath string) (*Inventory, error) {
	raw, err := os.ReadFile(confPath)

	if err != nil {
		return nil, err
	}

	var inv Inventory

	if err := yaml.Unmarshal(raw, &inv); err != nil {
		return nil, exception.NewConfigError("failed to parse inventory: %s", err)
	}

	if err := inv.normalize(); err != nil {
		return nil, err
	}

	return &inv, nil
}

// normalize merges defaults into each target, validates the result, and
// sorts targets by ID
func (inv *Inventory) normalize() error {
	if len(inv.Targets) == 0 {
		return exception.NewConfigError("inventory contains no targets")
	}

	defaults := Target{
		Port:           inv.Defaults.Port,
		TimeoutSeconds: inv.Defaults.TimeoutSeconds,
		Credentials:    inv.Defaults.Credentials,
	}

	seen := map[string]bool{}

	for i := range inv.Targets {
		if err := mergo.Merge(&inv.Targets[i], defaults); err != nil {
			return err
		}

		t := &inv.Targets[i]

		if t.ID == "" {
			return exception.NewConfigError("target %d is missing an id", i)
		}

		if seen[t.ID] {
			return exception.NewConfigError("duplicate target id: %s", t.ID)
		}

		seen[t.ID] = true

		if t.Label == "" {
			t.Label = t.ID
		}

		for key, value := range t.Credentials {
			if isPlaceholder(value) {
				return exception.NewConfigError(
					"target %s: credential %q looks like an unedited placeholder",
					t.ID,
					key,
				)
			}
		}
	}

	sort.Slice(inv.Targets, func(i, j int) bool {
		return inv.Targets[i].ID < inv.Targets[j].ID
	})

	return nil
}

// isPlaceholder reports whether a credential value is empty or still
// holds a template marker
func isPlaceholder(value string) bool {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		return true
	}

	if strings.HasPrefix(trimmed, "<") && strings.HasSuffix(trimmed, ">") {
		return true
	}

	upper := strings.ToUpper(trimmed)

	for _, marker := range placeholderMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}

	return false
}
