// Package live drives the interactive token display: a single-line view
// redrawn in place once per second until the surrounding context is
// cancelled. The loop never mutates state, so interrupting it at any point
// is safe.
package live
