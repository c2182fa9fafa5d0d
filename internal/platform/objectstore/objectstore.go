// Package objectstore provides key-value object storages with per-object metadata.
package objectstore

import (
	"errors"
)

// ErrNotFound is returned when object doesn't exist.
var ErrNotFound = errors.New("object not found")

// Object is stored object. Body is empty for objects returned by Head.
type Object struct {
	Key         string
	Body        []byte
	ContentType string
	Metadata    map[string]string
}

// PutOptions are options of stored object.
type PutOptions struct {
	ContentType string
	Metadata    map[string]string
}
