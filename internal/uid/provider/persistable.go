package provider

import (
	"fmt"
	"math"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
)

type persistableProvider struct{}

// NewPersistableProvider handles kind-qualified database ids.
// Ids that are not positive belong to unsaved entities and are rejected.
func NewPersistableProvider() uidDomain.Provider {
	return &persistableProvider{}
}

func (p *persistableProvider) Variant() uidDomain.Variant {
	return uidDomain.VariantPersistable
}

func (p *persistableProvider) Encode(uid uidDomain.Uid, words []uint64) bool {
	e, ok := uid.(uidDomain.Persistable)
	if !ok || e.ID <= 0 || len(words) != 2 {
		return false
	}

	words[0] = uint64(e.Kind)
	words[1] = uint64(e.ID)

	return true
}

func (p *persistableProvider) Decode(words []uint64) (uidDomain.Uid, error) {
	if len(words) != 2 {
		return nil, fmt.Errorf("persistable expects 2 words, got %d", len(words))
	}
	if words[0] > math.MaxUint32 {
		return nil, fmt.Errorf("persistable kind out of range")
	}
	if words[1] == 0 || words[1] > math.MaxInt64 {
		return nil, fmt.Errorf("persistable id out of range")
	}

	return uidDomain.Persistable{Kind: uint32(words[0]), ID: int64(words[1])}, nil
}
