// Package account implements authenticator lifecycle operations on top of
// the config store: provisioning, restoring, deleting, listing, and
// default-serial management. It maintains the store invariants (first added
// account becomes the default, restores never overwrite silently).
package account
