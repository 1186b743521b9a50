// Package utils holds small helpers shared by the dovado packages: resolving the
// credentials file next to the executable and closing resources without losing
// the error silently.
package utils
