// SPDX-License-Identifier: MPL-2.0

package controller

import (
	"errors"
	"testing"
)

func TestProvidersLoad(t *testing.T) {
	t.Parallel()

	p := NewProviders()
	p.Register("example.web", func() Controller { return plainController{} })

	c, err := p.Load("example.web")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := c.(plainController); !ok {
		t.Errorf("Load() returned %T, want plainController", c)
	}

	_, err = p.Load("example.missing")
	if !errors.Is(err, ErrModuleNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrModuleNotFound", err)
	}
}

func TestProvidersLoadNilController(t *testing.T) {
	t.Parallel()

	p := NewProviders()
	p.Register("example.broken", func() Controller { return nil })

	if _, err := p.Load("example.broken"); err == nil {
		t.Fatal("Load() should fail when the factory returns nil")
	}
}

func TestProvidersRegisterPanics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		register func(p *Providers)
	}{
		{
			name:     "empty module",
			register: func(p *Providers) { p.Register("", func() Controller { return plainController{} }) },
		},
		{
			name:     "nil factory",
			register: func(p *Providers) { p.Register("example.nil", nil) },
		},
		{
			name: "duplicate module",
			register: func(p *Providers) {
				p.Register("example.dup", func() Controller { return plainController{} })
				p.Register("example.dup", func() Controller { return plainController{} })
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			defer func() {
				if recover() == nil {
					t.Error("Register() did not panic")
				}
			}()
			tt.register(NewProviders())
		})
	}
}

func TestProvidersEntryPoints(t *testing.T) {
	t.Parallel()

	p := NewProviders()
	p.RegisterEntryPoint(ControllerGroup, "web", "example.web")
	p.RegisterEntryPoint(ApplicationGroup("web"), "blog", "myapp.blog")
	p.RegisterEntryPoint(ControllerGroup, "amqp", "example.amqp")

	got := p.EntryPoints(ControllerGroup)
	if len(got) != 2 {
		t.Fatalf("EntryPoints() returned %d entries, want 2", len(got))
	}
	if got[0].Name != "web" || got[1].Name != "amqp" {
		t.Errorf("EntryPoints() order = [%s %s], want [web amqp]", got[0].Name, got[1].Name)
	}

	apps := p.EntryPoints("sprockets.web.app")
	if len(apps) != 1 || apps[0].Module != "myapp.blog" {
		t.Errorf("EntryPoints(app group) = %+v, want one myapp.blog entry", apps)
	}
}
