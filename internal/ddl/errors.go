package ddl

import (
	"errors"
)

var (
	// ErrUnknownColumnType is returned when a column type is not in the dialect's type table
	ErrUnknownColumnType = errors.New("unknown column type")

	// ErrUnknownIndexType is returned when an index kind is not in the dialect's index table
	ErrUnknownIndexType = errors.New("unknown index type")

	// ErrMalformedTable is returned when a table snapshot cannot produce a valid statement
	ErrMalformedTable = errors.New("malformed table snapshot")

	// ErrMalformedDatabase is returned when a database snapshot has no name
	ErrMalformedDatabase = errors.New("malformed database snapshot")
)
