// Package report holds the result table of a run and renders it on screen
// or exports it as a tab separated phonetic spelling table or a CSV file of
// raw pronunciations.
package report
