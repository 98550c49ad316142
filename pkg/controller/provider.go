// SPDX-License-Identifier: MPL-2.0

package controller

import (
	"fmt"
	"sync"
)

const (
	// ControllerGroup is the entry-point group controllers are registered under.
	ControllerGroup = "sprockets.controller"
)

// DefaultProviders holds the factories and entry points compiled into the binary.
var DefaultProviders = NewProviders()

type (
	// EntryPoint maps a name within a group to a module identifier.
	EntryPoint struct {
		Group  string
		Name   string
		Module string
	}

	// Providers maps module identifiers to controller factories and keeps
	// the entry points advertised by compiled-in plugins.
	// It is safe for concurrent use.
	Providers struct {
		mu          sync.RWMutex
		factories   map[string]Factory
		entryPoints []EntryPoint
	}
)

// ApplicationGroup returns the entry-point group holding the applications
// registered for the named controller.
func ApplicationGroup(controllerName string) string {
	return "sprockets." + controllerName + ".app"
}

// NewProviders creates an empty provider set.
func NewProviders() *Providers {
	return &Providers{factories: make(map[string]Factory)}
}

// Register adds a factory for module.
// Panics if module is empty, f is nil, or module is already registered.
func (p *Providers) Register(module string, f Factory) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if module == "" {
		panic("controller: cannot register factory with empty module")
	}
	if f == nil {
		panic(fmt.Sprintf("controller: factory for %q is nil", module))
	}
	if _, exists := p.factories[module]; exists {
		panic(fmt.Sprintf("controller: module %q already registered", module))
	}
	p.factories[module] = f
}

// RegisterEntryPoint advertises module under name in group.
func (p *Providers) RegisterEntryPoint(group, name, module string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.entryPoints = append(p.entryPoints, EntryPoint{Group: group, Name: name, Module: module})
}

// EntryPoints returns the registered entry points of group in registration order.
func (p *Providers) EntryPoints(group string) []EntryPoint {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []EntryPoint
	for _, ep := range p.entryPoints {
		if ep.Group == group {
			out = append(out, ep)
		}
	}
	return out
}

// Load instantiates the controller registered for module.
func (p *Providers) Load(module string) (Controller, error) {
	p.mu.RLock()
	f, ok := p.factories[module]
	p.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, module)
	}
	c := f()
	if c == nil {
		return nil, fmt.Errorf("factory for %s returned nil controller", module)
	}
	return c, nil
}

// Register adds a factory to DefaultProviders.
func Register(module string, f Factory) { DefaultProviders.Register(module, f) }

// RegisterEntryPoint adds an entry point to DefaultProviders.
func RegisterEntryPoint(group, name, module string) {
	DefaultProviders.RegisterEntryPoint(group, name, module)
}

// Load instantiates a controller from DefaultProviders.
func Load(module string) (Controller, error) { return DefaultProviders.Load(module) }
