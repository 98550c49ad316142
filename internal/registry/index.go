// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"iter"

	"github.com/sprockets/sprockets/pkg/controller"
)

type (
	// EntryPoint maps a name within a group to a module identifier.
	EntryPoint = controller.EntryPoint

	// Index enumerates the entry points registered under a group.
	// An error yielded for one source does not end the enumeration;
	// consumers decide whether to skip it.
	Index interface {
		EntryPoints(ctx context.Context, group string) iter.Seq2[EntryPoint, error]
	}

	// StaticIndex is an in-memory index that yields its entries in order.
	StaticIndex []EntryPoint

	// BuiltinIndex yields the entry points registered by compiled-in plugins.
	BuiltinIndex struct {
		// Providers defaults to controller.DefaultProviders.
		Providers *controller.Providers
	}

	// MultiIndex concatenates indexes in order.
	MultiIndex []Index
)

// EntryPoints implements Index.
func (s StaticIndex) EntryPoints(_ context.Context, group string) iter.Seq2[EntryPoint, error] {
	return func(yield func(EntryPoint, error) bool) {
		for _, ep := range s {
			if ep.Group != group {
				continue
			}
			if !yield(ep, nil) {
				return
			}
		}
	}
}

// EntryPoints implements Index.
func (b BuiltinIndex) EntryPoints(_ context.Context, group string) iter.Seq2[EntryPoint, error] {
	providers := b.Providers
	if providers == nil {
		providers = controller.DefaultProviders
	}
	return func(yield func(EntryPoint, error) bool) {
		for _, ep := range providers.EntryPoints(group) {
			if !yield(ep, nil) {
				return
			}
		}
	}
}

// EntryPoints implements Index.
func (m MultiIndex) EntryPoints(ctx context.Context, group string) iter.Seq2[EntryPoint, error] {
	return func(yield func(EntryPoint, error) bool) {
		for _, idx := range m {
			for ep, err := range idx.EntryPoints(ctx, group) {
				if !yield(ep, err) {
					return
				}
			}
		}
	}
}
