package syncer

import (
	"errors"
	"fmt"
)

// ErrIncompleteStore is returned when forced pass couldn't store every fetched product.
var ErrIncompleteStore = errors.New("can't store all products")

// DispatchError is returned when sync chunk couldn't be handed to the queue.
// Chunks before Chunk were sent, the rest were not.
type DispatchError struct {
	Chunk int
	Err   error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("can't dispatch chunk %d: %v", e.Chunk, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
