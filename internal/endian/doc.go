// Package endian detects the platform specific byte endianness. On initialization
// the package checks if the system is using big or little endian byte ordering.
package endian
