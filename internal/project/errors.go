package project

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrMediaNotFound   = errors.New("media not found")

	// ErrSchemaMismatch indicates the database was created by an
	// incompatible version.
	ErrSchemaMismatch = errors.New("schema version mismatch")
)
