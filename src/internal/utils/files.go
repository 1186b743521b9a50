package utils

import (
	"io"

	"github.com/maksimkurb/dovado/src/internal/log"
)

// CloseOrWarn closes c and logs a warning instead of returning the error.
func CloseOrWarn(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warnf("Failed to close %T: %v", c, err)
	}
}
