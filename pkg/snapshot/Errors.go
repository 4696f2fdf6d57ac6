package snapshot

import "errors"

var (
	ERROR_VERSION_MISMATCH = errors.New("unsupported snapshot version")
	ERROR_INVALID          = errors.New("snapshot is invalid")
)
