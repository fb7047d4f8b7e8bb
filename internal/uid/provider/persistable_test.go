package provider

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
)

func TestPersistableProvider_Encode(t *testing.T) {
	p := NewPersistableProvider()
	assert.Equal(t, uidDomain.VariantPersistable, p.Variant())

	tests := []struct {
		name     string
		uid      uidDomain.Uid
		ok       bool
		expected []uint64
	}{
		{
			name:     "Success_Simple",
			uid:      uidDomain.Persistable{Kind: 3, ID: 42},
			ok:       true,
			expected: []uint64{3, 42},
		},
		{
			name:     "Success_Extremes",
			uid:      uidDomain.Persistable{Kind: math.MaxUint32, ID: math.MaxInt64},
			ok:       true,
			expected: []uint64{math.MaxUint32, math.MaxInt64},
		},
		{
			name: "Error_ZeroID",
			uid:  uidDomain.Persistable{Kind: 1, ID: 0},
		},
		{
			name: "Error_NegativeID",
			uid:  uidDomain.Persistable{Kind: 1, ID: -5},
		},
		{
			name: "Error_WrongType",
			uid:  uidDomain.ObjectID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := make([]uint64, 2)
			ok := p.Encode(tt.uid, words)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, words)
			}
		})
	}
}

func TestPersistableProvider_Decode(t *testing.T) {
	p := NewPersistableProvider()

	t.Run("Success", func(t *testing.T) {
		got, err := p.Decode([]uint64{7, 1001})
		require.NoError(t, err)
		assert.Equal(t, uidDomain.Persistable{Kind: 7, ID: 1001}, got)
	})

	t.Run("Error_KindOutOfRange", func(t *testing.T) {
		_, err := p.Decode([]uint64{math.MaxUint32 + 1, 1})
		assert.Error(t, err)
	})

	t.Run("Error_ZeroID", func(t *testing.T) {
		_, err := p.Decode([]uint64{1, 0})
		assert.Error(t, err)
	})

	t.Run("Error_IDOverflow", func(t *testing.T) {
		_, err := p.Decode([]uint64{1, math.MaxInt64 + 1})
		assert.Error(t, err)
	})
}
