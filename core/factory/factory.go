package factory

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
)

// ErrUnknownModule is returned by Create for unregistered types.
var ErrUnknownModule = errors.New("unknown module type")

// ModuleConfig names a pluggable module, e.g. a metrics sink or a renderer,
// together with its raw settings.
type ModuleConfig struct {
	Type string         `json:"type"`
	Conf map[string]any `json:"conf"`
}

// Factory builds a T from the Conf map of a ModuleConfig.
type Factory[T any] func(map[string]any) (T, error)

// Registry maps module types to factories. Type names are case-insensitive.
type Registry[T any] struct {
	mu    sync.RWMutex
	byKey map[string]Factory[T]
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{byKey: map[string]Factory[T]{}}
}

func key(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// Register binds name to f. Names may be registered once.
func (r *Registry[T]) Register(name string, f Factory[T]) error {
	k := key(name)
	switch {
	case k == "":
		return errors.New("factory registered without a name")
	case f == nil:
		return fmt.Errorf("factory nil for %s", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byKey[k]; dup {
		return fmt.Errorf("factory already registered for %s", name)
	}
	r.byKey[k] = f
	return nil
}

// Lookup returns the factory registered for name.
func (r *Registry[T]) Lookup(name string) (Factory[T], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byKey[key(name)]
	return f, ok
}

// Create runs the factory matching cfg.Type. Factory errors are prefixed
// with the module type.
func (r *Registry[T]) Create(cfg ModuleConfig) (T, error) {
	var zero T
	f, ok := r.Lookup(cfg.Type)
	if !ok {
		return zero, fmt.Errorf("%w %q", ErrUnknownModule, cfg.Type)
	}
	v, err := f(cfg.Conf)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", cfg.Type, err)
	}
	return v, nil
}

// Names lists the registered types in lexical order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.byKey))
	for n := range r.byKey {
		names = append(names, n)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Decode copies data into the struct pointed to by out, matching json tags.
// Scalars are converted to the field type so YAML, JSON and environment
// values decode alike.
func Decode(data map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}
