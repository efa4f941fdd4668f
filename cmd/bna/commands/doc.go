// Package commands defines the bna CLI and wires dependencies for the run.
//
// The tool is flag-driven: one invocation performs exactly one top-level
// action, picked in fixed priority order.
//
//   - --new            Provision a new authenticator and store it
//   - --delete         Remove the given serial from the store
//   - --list           List stored serials and mark the default
//   - --restore        Re-derive a secret from a serial and restore code
//   - (default)        Show the current code for a serial or the default
//
// Modifiers (--set-default, --remaining, --restore-code, --otpauth-url,
// --interactive) adjust what the resolved account displays. Results go to
// stdout; errors go to stderr with exit code 1.
package commands
