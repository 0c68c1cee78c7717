// Package search implements the worklist abstraction search: starting from
// single-zipper candidates, it merges compatible zippers into multi-arg,
// multi-use abstraction tuples, scoring each completed candidate with a
// utility accountant and pruning branches whose upper bound cannot beat the
// current cutoff.
package search

import "errors"

// ErrStoreNil is returned when a nil term.Store is passed to Run.
var ErrStoreNil = errors.New("search: store is nil")

// ErrCatalogueNil is returned when a nil zipper.Catalogue is passed to Run.
var ErrCatalogueNil = errors.New("search: catalogue is nil")

// ErrThreadsInvalid is returned when Options.Threads is less than 1.
var ErrThreadsInvalid = errors.New("search: threads must be >= 1")

// ErrCancelled reports that the search was abandoned via cooperative
// cancellation mid-run. No partial donelist is returned alongside it.
var ErrCancelled = errors.New("search: cancelled")
