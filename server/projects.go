package server

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/paddle-build/paddle-plugin-go/api"
	"github.com/paddle-build/paddle-plugin-go/convert"
	"github.com/paddle-build/paddle-plugin-go/spec"
)

// LoadSpecFile reads a configuration specification in wire JSON form.
func LoadSpecFile(path string, opts ...convert.Option) (*spec.Composite, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}
	msg, err := api.ParseCompositeSpec(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cs, err := convert.ToSpec(msg, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cs, nil
}

// ProjectID derives a project id from a spec file name by dropping its
// directory and extension.
func ProjectID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SeedProjects loads the spec files named by cfg.Projects into h, in
// project id order.
func SeedProjects(h *MemoryHost, cfg *Config) error {
	ids := make([]string, 0, len(cfg.Projects))
	for id := range cfg.Projects {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		cs, err := LoadSpecFile(cfg.Projects[id])
		if err != nil {
			return fmt.Errorf("project %s: %w", id, err)
		}
		if cfg.Strict {
			if err := spec.Check(cs); err != nil {
				return fmt.Errorf("project %s: %w", id, err)
			}
		}
		h.SetConfigSpec(id, cs)
		h.Log.Debug("seeded project", "project", id, "file", cfg.Projects[id])
	}
	return nil
}
