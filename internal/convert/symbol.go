package convert

import "bytes"

// SymbolString decodes a fixed-size, zero-padded symbol buffer up to the
// first terminator, or the full length when none is present.
func SymbolString(raw [32]byte) string {
	if i := bytes.IndexByte(raw[:], 0); i >= 0 {
		return string(raw[:i])
	}
	return string(raw[:])
}
