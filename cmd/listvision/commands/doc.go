// Package commands defines the listvision CLI and wires its dependencies.
//
// Commands
//
//   - serve     Run the MCP server on stdin/stdout (the default)
//   - edit      Edit the row list in the terminal
//   - detect    Run one detection on an image file and print the report
//   - rows      Apply list operations to the seed list and print each step
//   - version   Print build information
//
// # Implementation
//
// The root command loads configuration and builds the logger before any
// subcommand runs. Logs go to stderr, never stdout, because serve speaks
// JSON-RPC on stdout.
package commands
