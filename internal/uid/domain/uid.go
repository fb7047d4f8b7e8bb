package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// UUIDv1 is a time-based (version 1) UUID.
type UUIDv1 uuid.UUID

// Variant implements Uid.
func (UUIDv1) Variant() Variant { return VariantUUIDv1 }

// String returns the canonical UUID form.
func (u UUIDv1) String() string { return uuid.UUID(u).String() }

// UUIDv4 is a random (version 4) UUID.
type UUIDv4 uuid.UUID

// Variant implements Uid.
func (UUIDv4) Variant() Variant { return VariantUUIDv4 }

// String returns the canonical UUID form.
func (u UUIDv4) String() string { return uuid.UUID(u).String() }

// Persistable identifies a stored entity by kind and positive database id.
type Persistable struct {
	Kind uint32
	ID   int64
}

// Variant implements Uid.
func (Persistable) Variant() Variant { return VariantPersistable }

// String returns the "kind:id" form.
func (p Persistable) String() string {
	return fmt.Sprintf("%d:%d", p.Kind, p.ID)
}

// ParsePersistable parses the "kind:id" form.
func ParsePersistable(s string) (Persistable, error) {
	kindStr, idStr, ok := strings.Cut(s, ":")
	if !ok {
		return Persistable{}, fmt.Errorf("persistable must be in kind:id form, got %q", s)
	}
	kind, err := strconv.ParseUint(kindStr, 10, 32)
	if err != nil {
		return Persistable{}, fmt.Errorf("invalid persistable kind: %w", err)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return Persistable{}, fmt.Errorf("invalid persistable id: %w", err)
	}
	return Persistable{Kind: uint32(kind), ID: id}, nil
}

// ObjectID is a MongoDB ObjectID.
type ObjectID bson.ObjectID

// Variant implements Uid.
func (ObjectID) Variant() Variant { return VariantObjectID }

// String returns the 24 hex character form.
func (o ObjectID) String() string { return bson.ObjectID(o).Hex() }
