// Package core implements the inventory comparison logic: parsing the
// two inventory exports into immutable tables, diffing a filtered
// (store, inventory type) slice of them by VIN, and serializing the
// results into a multi-sheet report. It has no HTTP dependencies and
// can be driven by any frontend.
package core
