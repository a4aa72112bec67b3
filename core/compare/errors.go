package compare

import "errors"

// Error classes attached to failed results. Match them with errors.Is.
var (
	// ErrConfiguration covers invalid rules, unknown connections and missing tables or columns.
	ErrConfiguration = errors.New("configuration error")
	// ErrConnectivity covers failures talking to a database.
	ErrConnectivity = errors.New("connectivity error")
	// ErrData covers result sets that cannot be compared (wrong shape, unhashable keys).
	ErrData = errors.New("data error")
)
