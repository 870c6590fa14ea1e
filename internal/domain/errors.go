package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrOutOfStock indicates an add-to-cart against a product with no
	// available quantity.
	ErrOutOfStock = errors.New("out of stock")
)
