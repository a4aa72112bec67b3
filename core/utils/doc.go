// Package utils provides conversions for values read from database drivers.
package utils
