package repository

import "errors"

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g. postgres) inside this directory.

// ErrVersionConflict is returned when an optimistic concurrency check fails:
// the row exists but its version no longer matches the one the caller read.
var ErrVersionConflict = errors.New("version conflict")
