package discovery

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is returned by DefaultGateway on platforms without route table access.
	ErrUnsupported = fmt.Errorf("default gateway lookup: %w", errors.ErrUnsupported)

	// ErrNoGateway is returned when the main routing table has no IPv4 default route.
	ErrNoGateway = errors.New("no IPv4 default gateway found")
)
