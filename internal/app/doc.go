// Package app wires application dependencies for the CLI.
//
// It resolves the config file location, loads the store, and builds the
// token engine and account service, exposing them via the App struct for
// commands to use.
package app
