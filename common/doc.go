// Package common contains the functionality shared by all the jbclass packages:
// the leveled logger used across the library and small formatting helpers.
package common
