package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/paddle-build/paddle-plugin-go/api"
	"github.com/paddle-build/paddle-plugin-go/spec"
)

var ErrNoConfigSpec = errors.New("configuration specification not fetched")

// Service is the host side of a project. *client.Client implements it.
type Service interface {
	PrintMessage(ctx context.Context, projectID, message string, typ api.MessageType) error
	GetConfigSpec(ctx context.Context, projectID string) (*spec.Composite, error)
	UpdateConfigSpec(ctx context.Context, projectID string, cs *spec.Composite) error
}

// Project is a paddle project as seen by a plugin.
type Project struct {
	ID         string
	WorkingDir string

	svc Service
	log *slog.Logger

	mu     sync.Mutex
	tree   *spec.Tree
	hash   uint64 // of tree as last fetched or pushed
	config *Config
}

// New returns the project id rooted at dir and loads its configuration.
func New(id, dir string, svc Service) (*Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", id, err)
	}
	p := &Project{
		ID:         id,
		WorkingDir: abs,
		svc:        svc,
		log:        slog.Default().With("project", id),
	}
	if err := p.ReloadConfig(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Project) PrintMessage(ctx context.Context, message string, typ api.MessageType) error {
	return p.svc.PrintMessage(ctx, p.ID, message, typ)
}

// ConfigSpec returns the project's specification tree, fetching it from
// the host on first use. Changes made to the returned tree are kept until
// ResetConfigSpec.
func (p *Project) ConfigSpec(ctx context.Context) (*spec.Tree, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tree != nil {
		return p.tree, nil
	}
	root, err := p.svc.GetConfigSpec(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("project %s: %w", p.ID, err)
	}
	p.tree = spec.NewTree(root)
	p.hash = spec.Hash(p.tree.Root)
	return p.tree, nil
}

// ResetConfigSpec drops the cached specification, discarding unpushed
// changes.
func (p *Project) ResetConfigSpec() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tree = nil
	p.hash = 0
}

// UpdateConfigSpec pushes the cached specification to the host if it
// changed since it was fetched or last pushed.
func (p *Project) UpdateConfigSpec(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.tree == nil {
		return fmt.Errorf("project %s: %w", p.ID, ErrNoConfigSpec)
	}
	h := spec.Hash(p.tree.Root)
	if h == p.hash {
		p.log.Debug("configuration specification unchanged")
		return nil
	}
	if err := p.svc.UpdateConfigSpec(ctx, p.ID, p.tree.Root); err != nil {
		return fmt.Errorf("project %s: %w", p.ID, err)
	}
	p.hash = h
	return nil
}

// Config returns the configuration loaded by the last ReloadConfig.
func (p *Project) Config() *Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.config
}

// ReloadConfig re-reads paddle.yaml from the working directory. On error
// the previous configuration is kept.
func (p *Project) ReloadConfig() error {
	c, err := LoadConfig(filepath.Join(p.WorkingDir, ConfigFile))
	if err != nil {
		return fmt.Errorf("project %s: %w", p.ID, err)
	}
	p.mu.Lock()
	p.config = c
	p.mu.Unlock()
	return nil
}
