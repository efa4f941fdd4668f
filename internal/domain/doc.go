// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (serials, secrets, accounts) and contracts
// (interfaces) only.
package domain
