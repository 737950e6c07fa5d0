// Package accounts implements the polling core: a bulk account loader that
// multiplexes many logical subscriptions onto periodic batched reads, and a
// generic slot-gated subscriber built on top of it.
package accounts

// DataAndSlot pairs a decoded snapshot with the ledger slot it was observed
// at. Within one subscriber the slot never decreases.
type DataAndSlot[T any] struct {
	Data T
	Slot uint64
}

// BufferAndSlot pairs raw account bytes with the slot they were fetched at.
type BufferAndSlot struct {
	Buffer []byte
	Slot   uint64
}
