// Package state provides build state management using SQLite.
// It tracks builds, the artifacts each build wrote, and the content hash of
// every component so unchanged components can be skipped.
//
// Core types are defined in pkg/core; this package only implements
// core.Store.
package state

import "errors"

// ErrStoreNotOpen is returned by every operation on a store that has not
// been opened.
var ErrStoreNotOpen = errors.New("database not opened")
