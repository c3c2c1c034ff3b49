package hashtable

import (
	"errors"
	"fmt"
)

var (
	// ErrTableFull is returned by Insert when a new key finds no empty slot.
	ErrTableFull = errors.New("hashtable: table is full")

	// ErrHashOutOfRange is returned (wrapped in a *HashRangeError) by Insert
	// when the hash function returns an index outside [0, capacity).
	ErrHashOutOfRange = errors.New("hashtable: hash out of range")
)

type HashRangeError struct {
	Index    uint64
	Capacity uint64
}

func (e *HashRangeError) Error() string {
	return fmt.Sprintf("hashtable: hash index %d out of range for capacity %d", e.Index, e.Capacity)
}

func (e *HashRangeError) Unwrap() error {
	return ErrHashOutOfRange
}
