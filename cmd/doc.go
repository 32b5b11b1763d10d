// Package cmd implements the command-line interface for the cornichon
// embedded key-value store. It provides a hierarchical command structure
// for inspecting and manipulating database files.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for scalar key-value operations (get, set, delete, etc.)
//   - list: Commands for list operations (create, add, pop, etc.)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See cornichon -help for a list of all commands.
package cmd
