package zerobuf

import (
	"fmt"
	"slices"
	"sync"
)

// Factory returns a new zero-initialized object.
type Factory func() Zerobuf

type registration struct {
	name    string
	factory Factory
}

var registry = struct {
	sync.RWMutex
	byID   map[Uint128]registration
	byName map[string]Uint128
}{
	byID:   make(map[Uint128]registration),
	byName: make(map[string]Uint128),
}

// Register makes a table type available to New and Lookup. Generated
// registry files call it from init. Registering the same identifier twice
// under a different name panics.
func Register(id Uint128, name string, factory Factory) {
	registry.Lock()
	defer registry.Unlock()
	if r, ok := registry.byID[id]; ok && r.name != name {
		panic(fmt.Sprintf("zerobuf: type identifier %s registered for %s and %s", id, r.name, name))
	}
	registry.byID[id] = registration{name: name, factory: factory}
	registry.byName[name] = id
}

// New returns a new object of the type registered under id.
func New(id Uint128) (Zerobuf, error) {
	registry.RLock()
	r, ok := registry.byID[id]
	registry.RUnlock()
	if !ok {
		return nil, &UnknownTypeError{Key: id.String()}
	}
	return r.factory(), nil
}

// NewByName returns a new object of the type registered under name.
func NewByName(name string) (Zerobuf, error) {
	id, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return New(id)
}

// Lookup returns the identifier registered for the fully qualified name.
func Lookup(name string) (Uint128, error) {
	registry.RLock()
	defer registry.RUnlock()
	id, ok := registry.byName[name]
	if !ok {
		return Uint128{}, &UnknownTypeError{Key: name}
	}
	return id, nil
}

// Registered returns the names of all registered types, sorted.
func Registered() []string {
	registry.RLock()
	names := make([]string, 0, len(registry.byName))
	for name := range registry.byName {
		names = append(names, name)
	}
	registry.RUnlock()
	slices.Sort(names)
	return names
}
