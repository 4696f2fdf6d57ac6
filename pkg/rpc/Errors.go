package rpc

import "errors"

var (
	ERROR_TRANSIENT      = errors.New("transient transport fault")
	ERROR_REJECTED       = errors.New("request rejected")
	ERROR_UNKNOWN_METHOD = errors.New("unknown method")
	ERROR_BAD_REQUEST    = errors.New("malformed request")
)
