package connectivity

import "errors"

var (
	ERROR_UNKNOWN_HOST = errors.New("unknown host")
	ERROR_BOOTSTRAP    = errors.New("bootstrap failed")
)
