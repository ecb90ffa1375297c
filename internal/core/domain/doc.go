// Package domain contains the core business types and errors.
// It has no dependencies on adapters or external libraries.
package domain
