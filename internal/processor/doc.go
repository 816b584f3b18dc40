// Package processor contains the core business logic of pronounceit. It
// looks up every word in the configured dictionary, turns the first
// pronunciation into a respelling or raw ARPAbet string, and coordinates
// the on-screen table, the saved report and the Anki deck export.
package processor
