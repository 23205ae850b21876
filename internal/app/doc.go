// Package app wires configuration, the stored session, the HTTP client and
// the product store together, then hands them to the TUI or to one of the
// headless spreadsheet commands.
package app
