package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/fatih/color"

	"github.com/paddle-build/paddle-plugin-go/api"
	"github.com/paddle-build/paddle-plugin-go/convert"
	"github.com/paddle-build/paddle-plugin-go/spec"
)

// Host answers the operations plugins call on their host. Returned errors
// of type *api.Error are passed to the client as is; others are reported as
// internal errors.
type Host interface {
	PrintMessage(ctx context.Context, projectID, message string, typ api.MessageType) error
	GetConfigSpec(ctx context.Context, projectID string) (*api.CompositeSpecNode, error)
	UpdateConfigSpec(ctx context.Context, projectID string, cs *api.CompositeSpecNode) error
}

// MemoryHost is a Host keeping configuration specs in memory and printing
// messages to a writer.
type MemoryHost struct {
	// Out receives printed messages. Defaults to os.Stdout.
	Out io.Writer
	// Strict rejects updates that fail spec.Check.
	Strict bool
	Log    *slog.Logger

	mu    sync.RWMutex
	specs map[string]*spec.Composite

	outMu sync.Mutex
}

func NewMemoryHost(out io.Writer, log *slog.Logger) *MemoryHost {
	if out == nil {
		out = os.Stdout
	}
	if log == nil {
		log = slog.Default()
	}
	return &MemoryHost{
		Out:   out,
		Log:   log.With("component", "host"),
		specs: map[string]*spec.Composite{},
	}
}

var messageColors = map[api.MessageType]func(string, ...any) string{
	api.MessageDebug:   color.New(color.Faint).SprintfFunc(),
	api.MessageInfo:    color.New(color.FgCyan).SprintfFunc(),
	api.MessageWarning: color.New(color.FgYellow).SprintfFunc(),
	api.MessageError:   color.New(color.FgRed, color.Bold).SprintfFunc(),
}

func (h *MemoryHost) PrintMessage(_ context.Context, projectID, message string, typ api.MessageType) error {
	paint, ok := messageColors[typ]
	if !ok {
		return api.NewError(api.ErrCodeInvalidMessage, fmt.Sprintf("unknown message type %d", int(typ)))
	}
	h.outMu.Lock()
	defer h.outMu.Unlock()
	_, err := fmt.Fprintf(h.Out, "[%s] %s %s\n", projectID, paint("%-7s", typ), message)
	return err
}

// SetConfigSpec stores a copy of cs for projectID.
func (h *MemoryHost) SetConfigSpec(projectID string, cs *spec.Composite) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.specs[projectID] = spec.CloneComposite(cs)
}

func (h *MemoryHost) GetConfigSpec(_ context.Context, projectID string) (*api.CompositeSpecNode, error) {
	h.mu.RLock()
	cs, ok := h.specs[projectID]
	h.mu.RUnlock()
	if !ok {
		return nil, api.NewError(api.ErrCodeNotFound, fmt.Sprintf("no configuration specification for project %q", projectID))
	}
	return convert.FromSpec(cs)
}

func (h *MemoryHost) UpdateConfigSpec(_ context.Context, projectID string, msg *api.CompositeSpecNode) error {
	cs, err := convert.ToSpec(msg)
	if err != nil {
		return api.NewError(api.ErrCodeInvalidSpec, err.Error())
	}
	if h.Strict {
		if err := spec.Check(cs); err != nil {
			return api.NewError(api.ErrCodeInvalidSpec, err.Error())
		}
	}
	h.mu.Lock()
	h.specs[projectID] = cs
	h.mu.Unlock()
	h.Log.Info("updated configuration specification", "project", projectID, "properties", cs.NumProperties())
	return nil
}

// Projects returns the sorted ids of all projects with a stored spec.
func (h *MemoryHost) Projects() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Sorted(maps.Keys(h.specs))
}
