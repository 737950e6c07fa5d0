// Package layout holds the raw on-chain account structures exactly as the
// program serializes them (borsh, little-endian, 8-byte discriminator
// prefix). Scaling and cross-entity resolution happen in internal/convert.
package layout

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
)

// DiscriminatorLen is the length of the account discriminator prefix.
const DiscriminatorLen = 8

func borshDecoder(data []byte, kind string) (*bin.Decoder, error) {
	if len(data) < DiscriminatorLen {
		return nil, fmt.Errorf("%s account data too short: %d bytes", kind, len(data))
	}
	return bin.NewBorshDecoder(data[DiscriminatorLen:]), nil
}

func decode[T any](data []byte, kind string) (T, error) {
	var v T
	dec, err := borshDecoder(data, kind)
	if err != nil {
		return v, err
	}
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("decode %s: %w", kind, err)
	}
	return v, nil
}
