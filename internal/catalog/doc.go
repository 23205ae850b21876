// Package catalog holds the product domain model and the in-memory
// collection state.
//
// # Overview
//
// The Store is a cache of the gateway's last known state per product
// identifier. It is populated wholesale by the initial fetch and mutated one
// record at a time as add/edit/delete responses arrive. Nothing here talks to
// the network; the gateway client and the UI meet in this package.
//
// # Core Types
//
// Product:
//   - One catalog entry mirroring the server record
//   - Price carried as a decimal, never a float
//
// Store:
//   - map[id]Product behind a sync.RWMutex
//   - Load replaces everything; Upsert/Remove touch single entries
//   - Products() hands out defensive copies in ascending ID order
//
// Draft / Changes:
//   - Draft is raw form input; Validate normalizes it and reports
//     field-keyed errors before anything reaches the network
//   - Diff(old, draft) yields the minimal field set an update should send
package catalog
