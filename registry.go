package formation

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/aretw0/formation/pkg/codec"
	"github.com/aretw0/formation/pkg/domain"
	"github.com/aretw0/formation/pkg/ports"
)

// Constructor builds a default, empty model instance.
type Constructor func() ports.Model

// Registry maps formation method names to model constructors.
// It is populated once, typically from init functions, and read afterwards.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ctors: make(map[string]Constructor),
	}
}

// Register associates name with ctor. The name must be unique and equal to
// the MethodName of the models ctor builds.
func (r *Registry) Register(name string, ctor Constructor) error {
	if name == "" {
		return errors.New("formation method name is required")
	}
	if ctor == nil {
		return errors.New("formation constructor is required")
	}
	m := ctor()
	if m == nil {
		return fmt.Errorf("formation constructor for %s returned nil", name)
	}
	if m.MethodName() != name {
		return fmt.Errorf("formation constructor for %s builds %s", name, m.MethodName())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.ctors[name]; exists {
		return fmt.Errorf("%w: %s", domain.ErrTypeExists, name)
	}
	r.ctors[name] = ctor
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, ctor Constructor) {
	if err := r.Register(name, ctor); err != nil {
		panic(err)
	}
}

// Names returns the registered method names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the constructor registered under name.
func (r *Registry) Lookup(name string) (Constructor, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownType, name)
	}
	return ctor, nil
}

// Create returns a new, empty Formation of the named method.
func (r *Registry) Create(name string, opts ...Option) (*Formation, error) {
	ctor, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return New(ctor, opts...)
}

// Decode builds a Formation from a document. Only the header is inspected to
// choose the model; the whole document is then read into the new instance.
// On any failure no Formation is returned.
func (r *Registry) Decode(rd io.Reader, opts ...Option) (*Formation, error) {
	cr := codec.NewReader(rd)

	head, err := cr.Peek()
	if err != nil {
		return nil, codec.Unexpected(err, "header")
	}
	name, _, err := parseHeader(head)
	if err != nil {
		return nil, err
	}

	f, err := r.Create(name, opts...)
	if err != nil {
		return nil, err
	}
	if err := f.readFrom(cr); err != nil {
		return nil, err
	}
	return f, nil
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry that concrete models
// join from their init functions.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a model constructor to the default registry.
func Register(name string, ctor Constructor) error {
	return defaultRegistry.Register(name, ctor)
}

// MustRegister adds a model constructor to the default registry and panics on error.
func MustRegister(name string, ctor Constructor) {
	defaultRegistry.MustRegister(name, ctor)
}

// Registered returns the method names of the default registry, sorted.
func Registered() []string {
	return defaultRegistry.Names()
}

// Create returns a new, empty Formation of the named method from the default registry.
func Create(name string, opts ...Option) (*Formation, error) {
	return defaultRegistry.Create(name, opts...)
}

// Decode builds a Formation from a document using the default registry.
func Decode(rd io.Reader, opts ...Option) (*Formation, error) {
	return defaultRegistry.Decode(rd, opts...)
}
