// Package ui implements the terminal interface with Bubble Tea.
//
// A single Model drives every view. The browse view shows the product table
// with search, sort and paging applied locally; modal views handle the
// add/edit form, sign-in, delete confirmation and spreadsheet import. All
// network work runs in tea.Cmd goroutines and reports back through typed
// messages, so the model itself is never touched concurrently.
package ui
