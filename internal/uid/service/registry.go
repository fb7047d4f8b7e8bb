package service

import (
	"fmt"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
)

// Registry maps variant tags and variants to their providers.
//
// It is assembled once from a fixed provider list and is read-only afterwards,
// so lookups are safe for concurrent use.
type Registry struct {
	byTag    [uidDomain.MaxTag + 1]uidDomain.Provider
	variants []uidDomain.Variant
}

// NewRegistry registers providers in order. It fails on a nil provider, a tag
// outside [0, 15], a block count outside [1, 2], or a duplicate tag.
func NewRegistry(providers ...uidDomain.Provider) (*Registry, error) {
	r := &Registry{
		variants: make([]uidDomain.Variant, 0, len(providers)),
	}

	for i, p := range providers {
		if p == nil {
			return nil, fmt.Errorf("%w: position %d", uidDomain.ErrNilProvider, i)
		}

		variant := p.Variant()
		if err := variant.Validate(); err != nil {
			return nil, err
		}

		if existing := r.byTag[variant.Tag]; existing != nil {
			return nil, fmt.Errorf(
				"%w: tag=%d, variant=%s, registered=%s",
				uidDomain.ErrDuplicateVariant,
				variant.Tag,
				variant,
				existing.Variant(),
			)
		}

		r.byTag[variant.Tag] = p
		r.variants = append(r.variants, variant)
	}

	return r, nil
}

// ProviderForTag returns the provider registered for tag.
// An unknown tag is reported with ok=false; it is expected for foreign tokens.
func (r *Registry) ProviderForTag(tag uint8) (uidDomain.Provider, bool) {
	if tag > uidDomain.MaxTag {
		return nil, false
	}
	p := r.byTag[tag]
	return p, p != nil
}

// ProviderForVariant returns the provider registered for exactly this variant.
func (r *Registry) ProviderForVariant(v uidDomain.Variant) (uidDomain.Provider, bool) {
	p, ok := r.ProviderForTag(v.Tag)
	if !ok || p.Variant() != v {
		return nil, false
	}
	return p, true
}

// Variants returns the registered variants in registration order.
func (r *Registry) Variants() []uidDomain.Variant {
	out := make([]uidDomain.Variant, len(r.variants))
	copy(out, r.variants)
	return out
}
