// Package axisstore provides storage backends for the facet table and for
// persisted view state.
//
// This package implements the pafv.FacetStore and pafv.ViewStore interfaces
// with three backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI workflows
//   - mongo: Document-store backend for server deployments
//
// # Architecture
//
// The facet table is read-mostly: backends load the table definition and
// callers filter and sort it. View state is write-heavy: every axis
// assignment and pan/zoom settle flows through an upsert keyed by
// (canvasID, viewName).
//
// # Usage
//
// Create a store:
//
//	// Development
//	store := axisstore.NewMemoryStore(facets)
//
//	// CLI
//	store, err := axisstore.NewFileStore("")  // Uses ~/.config/isogrid/
//
//	// Server
//	store, err := axisstore.NewMongoStore(ctx, axisstore.MongoConfig{
//	    URI:      "mongodb://localhost:27017",
//	    Database: "isogrid",
//	})
package axisstore

import (
	"errors"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrClosed is returned when operating on a closed store.
	ErrClosed = errors.New("store closed")
)
