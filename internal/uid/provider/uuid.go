// Package provider contains the built-in variant providers: time-based and
// random UUIDs, persistable entity ids and MongoDB ObjectIDs.
package provider

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
)

// The UUID version nibble sits at bits 12..15 of the most significant word.
// It is implied by the variant, which leaves 60 payload bits for that word.
const (
	versionShift      = 12
	lowTimeMask       = 0xfff
	versionNibbleBits = 4
)

// uuidProvider packs UUIDs of one fixed version.
type uuidProvider struct {
	variant uidDomain.Variant
	version uuid.Version
	wrap    func(uuid.UUID) uidDomain.Uid
	unwrap  func(uidDomain.Uid) (uuid.UUID, bool)
}

// NewUUIDv1Provider handles time-based UUIDs.
func NewUUIDv1Provider() uidDomain.Provider {
	return &uuidProvider{
		variant: uidDomain.VariantUUIDv1,
		version: 1,
		wrap:    func(u uuid.UUID) uidDomain.Uid { return uidDomain.UUIDv1(u) },
		unwrap: func(uid uidDomain.Uid) (uuid.UUID, bool) {
			u, ok := uid.(uidDomain.UUIDv1)
			return uuid.UUID(u), ok
		},
	}
}

// NewUUIDv4Provider handles random UUIDs.
func NewUUIDv4Provider() uidDomain.Provider {
	return &uuidProvider{
		variant: uidDomain.VariantUUIDv4,
		version: 4,
		wrap:    func(u uuid.UUID) uidDomain.Uid { return uidDomain.UUIDv4(u) },
		unwrap: func(uid uidDomain.Uid) (uuid.UUID, bool) {
			u, ok := uid.(uidDomain.UUIDv4)
			return uuid.UUID(u), ok
		},
	}
}

func (p *uuidProvider) Variant() uidDomain.Variant {
	return p.variant
}

// Encode drops the version nibble from the high word. UUIDs of another
// version are rejected.
func (p *uuidProvider) Encode(uid uidDomain.Uid, words []uint64) bool {
	u, ok := p.unwrap(uid)
	if !ok || u.Version() != p.version || len(words) != p.variant.Blocks {
		return false
	}

	msb := binary.BigEndian.Uint64(u[:8])
	words[0] = (msb>>(versionShift+versionNibbleBits))<<versionShift | msb&lowTimeMask
	words[1] = binary.BigEndian.Uint64(u[8:])

	return true
}

func (p *uuidProvider) Decode(words []uint64) (uidDomain.Uid, error) {
	if len(words) != p.variant.Blocks {
		return nil, fmt.Errorf("%s expects %d words, got %d", p.variant, p.variant.Blocks, len(words))
	}

	high := words[0] >> versionShift
	msb := high<<(versionShift+versionNibbleBits) | uint64(p.version)<<versionShift | words[0]&lowTimeMask

	var u uuid.UUID
	binary.BigEndian.PutUint64(u[:8], msb)
	binary.BigEndian.PutUint64(u[8:], words[1])

	return p.wrap(u), nil
}
