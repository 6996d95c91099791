// Package commands defines the fhsslink CLI.
//
// Commands
//
//   - keygen    Generate a link secret
//   - derive    Print the hop schedule for a secret
//   - simulate  Run a full master/slave link in process
//
// # Implementation
//
// The root command loads the link configuration (YAML file via --config,
// defaults otherwise) before any subcommand runs, so handlers share a
// single Config value.
package commands
