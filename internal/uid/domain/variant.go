package domain

import "fmt"

// Variant describes one identifier type: its 4-bit tag and the number of
// 64-bit words its payload occupies.
//
// Variants are comparable and used as map keys.
type Variant struct {
	Name   string
	Tag    uint8
	Blocks int
}

// String returns the variant name.
func (v Variant) String() string {
	return v.Name
}

// Validate checks the tag range and block count. Only 1 and 2 blocks encode to
// a body the token decoder accepts.
func (v Variant) Validate() error {
	if v.Tag > MaxTag {
		return fmt.Errorf("%w: variant=%s, tag=%d", ErrInvalidVariantTag, v.Name, v.Tag)
	}
	if v.Blocks < 1 || v.Blocks > MaxBlocks {
		return fmt.Errorf("%w: variant=%s, blocks=%d", ErrInvalidBlockCount, v.Name, v.Blocks)
	}
	return nil
}

// Built-in variants. Tags are 4-bit binary literals.
var (
	// VariantUUIDv1 is a time-based UUID.
	VariantUUIDv1 = Variant{Name: "uuid-v1", Tag: 0b0001, Blocks: 2}

	// VariantUUIDv4 is a random UUID.
	VariantUUIDv4 = Variant{Name: "uuid-v4", Tag: 0b0100, Blocks: 2}

	// VariantPersistable is a database entity id qualified by an entity kind.
	VariantPersistable = Variant{Name: "persistable", Tag: 0b1001, Blocks: 2}

	// VariantObjectID is a 12-byte MongoDB ObjectID.
	VariantObjectID = Variant{Name: "object-id", Tag: 0b1010, Blocks: 2}
)

// Uid is a typed identifier that can be turned into a token.
type Uid interface {
	// Variant returns the variant this identifier belongs to.
	Variant() Variant
}

// Provider converts between a typed identifier and its raw word array.
//
// Implementations must be safe for concurrent use.
type Provider interface {
	// Variant returns the variant this provider handles.
	Variant() Variant

	// Encode fills words (len == Variant().Blocks) from uid. Only the low 60 bits
	// of words[0] are kept; the top 4 bits are overwritten with the tag.
	// Returns false when uid cannot be represented.
	Encode(uid Uid, words []uint64) bool

	// Decode builds the typed identifier from words. words[0] has its tag bits
	// cleared. Returns an error when the words do not form a valid identifier.
	Decode(words []uint64) (Uid, error)
}
