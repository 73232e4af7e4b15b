package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"voice-assistant/internal/language"
	"voice-assistant/internal/observability"
)

// Registry is a threadsafe set of tools and the boundary where typed tool
// results become the strings a model reads.
type Registry struct {
	mu      sync.RWMutex
	tools   map[string]Tool
	catalog Catalog
	logger  *observability.Logger
}

// NewRegistry returns an empty registry rendering results with catalog.
func NewRegistry(catalog Catalog, logger *observability.Logger) *Registry {
	return &Registry{
		tools:   make(map[string]Tool),
		catalog: catalog,
		logger:  logger,
	}
}

// NewDefaultRegistry registers the language tools and the system utilities.
func NewDefaultRegistry(store *language.Store, runner CommandRunner, catalog Catalog, logger *observability.Logger) *Registry {
	r := NewRegistry(catalog, logger)
	r.Register(NewChangeSTTLanguageTool(store))
	r.Register(NewGetCurrentSTTLanguageTool(store))
	r.Register(NewInstallPackageTool(runner))
	r.Register(NewUpdateSystemTool(runner))
	r.Register(NewSystemInfoTool(runner))
	r.Register(NewCheckMemoryTool(runner))
	r.Register(NewSetVolumeTool(runner))
	r.Register(NewWifiStatusTool(runner))
	r.Register(NewKillProcessTool(runner))
	r.Register(NewOpenApplicationTool(runner))
	return r
}

// Register adds t under its specification name, replacing any previous tool.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	r.tools[t.Specification().Name] = t
	r.mu.Unlock()
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Specifications lists every registered tool sorted by name.
func (r *Registry) Specifications() []Specification {
	r.mu.RLock()
	specs := make([]Specification, 0, len(r.tools))
	for _, t := range r.tools {
		specs = append(specs, t.Specification())
	}
	r.mu.RUnlock()

	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}

// Catalog returns the catalog used for rendering.
func (r *Registry) Catalog() Catalog {
	return r.catalog
}

// Call runs the named tool and returns its typed result. Panics inside a
// tool are recovered and reported as KindInternal.
func (r *Registry) Call(ctx context.Context, name string, input json.RawMessage) (out Outcome, err error) {
	t, found := r.Get(name)
	if !found {
		return Outcome{}, newError(KindValidation, name, fmt.Errorf("%w: %s", ErrUnknownTool, name), MsgUnknownTool, name)
	}

	defer func() {
		if rec := recover(); rec != nil {
			out = Outcome{}
			err = newError(KindInternal, name, fmt.Errorf("panic: %+v", rec), MsgInternal)
		}
	}()
	return t.Run(ctx, input)
}

// Invoke runs the named tool and renders the result. It never fails: every
// error is logged with its detail and converted to a display string.
func (r *Registry) Invoke(ctx context.Context, name string, input json.RawMessage) string {
	text, _ := r.Execute(ctx, name, input)
	return text
}

// Execute is Invoke for callers that also need the failure. The returned
// text is always renderable, including when err is non-nil.
func (r *Registry) Execute(ctx context.Context, name string, input json.RawMessage) (string, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "tool", Value: name})

	out, err := r.Call(ctx, name, input)
	if err != nil {
		r.logFailure(ctx, err)
		return r.Render(out, err), err
	}

	if out.Output != "" {
		r.logger.Debug(ctx, fmt.Sprintf("tool output: %s", out.Output))
	}
	r.logger.Info(ctx, "tool invoked")
	return r.Render(out, nil), nil
}

// Render converts a typed result to its display string.
func (r *Registry) Render(out Outcome, err error) string {
	if err == nil {
		return r.catalog.Render(out.Message, out.Params...)
	}

	var toolErr *Error
	if errors.As(err, &toolErr) {
		return r.catalog.Render(toolErr.Message, toolErr.Params...)
	}
	return r.catalog.Render(MsgInternal)
}

func (r *Registry) logFailure(ctx context.Context, err error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "error_kind", Value: KindOf(err).String()})
	switch KindOf(err) {
	case KindValidation:
		r.logger.InfoWithError(ctx, "tool rejected input", err)
	case KindInternal:
		r.logger.Error(ctx, "tool failed unexpectedly", err)
	default:
		r.logger.WarnWithError(ctx, "tool failed", err)
	}
}
