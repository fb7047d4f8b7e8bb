package domain

import (
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ParseUid parses the textual value of a built-in variant:
// canonical UUIDs for uuid-v1 and uuid-v4, "kind:id" for persistable and
// 24 hex characters for object-id.
//
// Only the syntax is checked here. Range checks (UUID version, positive id)
// belong to the provider and surface as ErrEncodeRejected.
func ParseUid(variantName, value string) (Uid, error) {
	switch variantName {
	case VariantUUIDv1.Name, VariantUUIDv4.Name:
		u, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		if variantName == VariantUUIDv1.Name {
			return UUIDv1(u), nil
		}
		return UUIDv4(u), nil

	case VariantPersistable.Name:
		p, err := ParsePersistable(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return p, nil

	case VariantObjectID.Name:
		oid, err := bson.ObjectIDFromHex(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return ObjectID(oid), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variantName)
	}
}

// FormatUid returns the textual value of uid, the inverse of ParseUid for
// built-in variants.
func FormatUid(uid Uid) string {
	if s, ok := uid.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(uid)
}
