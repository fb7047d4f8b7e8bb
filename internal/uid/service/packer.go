package service

import (
	"encoding/binary"
	"fmt"

	uidDomain "github.com/allisson/uids/internal/uid/domain"
)

// Pack embeds tag in the top 4 bits of words[0] and serializes all words big-endian.
// The caller's slice is not modified.
func Pack(tag uint8, words []uint64) []byte {
	block := make([]byte, len(words)*uidDomain.BlockSize)
	for i, w := range words {
		if i == 0 {
			w = (w & uidDomain.PayloadMask) | uint64(tag&uidDomain.MaxTag)<<uidDomain.TagShift
		}
		binary.BigEndian.PutUint64(block[i*uidDomain.BlockSize:], w)
	}
	return block
}

// Unpack reads the tag from the top 4 bits of the first word and returns the
// words with the tag bits cleared.
func Unpack(block []byte) (uint8, []uint64, error) {
	if len(block) == 0 || len(block)%uidDomain.BlockSize != 0 {
		return 0, nil, fmt.Errorf("%w: packed block of %d bytes", uidDomain.ErrMalformedToken, len(block))
	}

	words := make([]uint64, len(block)/uidDomain.BlockSize)
	for i := range words {
		words[i] = binary.BigEndian.Uint64(block[i*uidDomain.BlockSize:])
	}

	tag := uint8(words[0] >> uidDomain.TagShift)
	words[0] &= uidDomain.PayloadMask

	return tag, words, nil
}
