// Package types defines the material record type and the standard errors
// shared by the storage, review, and mail layers.
package types
