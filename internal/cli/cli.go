// Package cli implements the arrayfile command-line interface.
//
// It provides commands for inspecting a data module, round-tripping it
// through the re-serializer, applying single edits from the shell, and an
// interactive form editor built on Bubble Tea. All commands support
// --verbose (-v) for debug-level logging; loggers travel through
// context.Context.
package cli
