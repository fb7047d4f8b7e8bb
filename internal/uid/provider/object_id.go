package provider

import (
	"encoding/binary"
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/v2/bson"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
)

type objectIDProvider struct{}

// NewObjectIDProvider handles MongoDB ObjectIDs: the 4-byte timestamp goes in
// the first word, the remaining 8 bytes in the second.
func NewObjectIDProvider() uidDomain.Provider {
	return &objectIDProvider{}
}

func (p *objectIDProvider) Variant() uidDomain.Variant {
	return uidDomain.VariantObjectID
}

func (p *objectIDProvider) Encode(uid uidDomain.Uid, words []uint64) bool {
	oid, ok := uid.(uidDomain.ObjectID)
	if !ok || len(words) != 2 {
		return false
	}

	words[0] = uint64(binary.BigEndian.Uint32(oid[:4]))
	words[1] = binary.BigEndian.Uint64(oid[4:])

	return true
}

func (p *objectIDProvider) Decode(words []uint64) (uidDomain.Uid, error) {
	if len(words) != 2 {
		return nil, fmt.Errorf("object-id expects 2 words, got %d", len(words))
	}
	if words[0] > math.MaxUint32 {
		return nil, fmt.Errorf("object-id timestamp out of range")
	}

	var oid bson.ObjectID
	binary.BigEndian.PutUint32(oid[:4], uint32(words[0]))
	binary.BigEndian.PutUint64(oid[4:], words[1])

	return uidDomain.ObjectID(oid), nil
}
