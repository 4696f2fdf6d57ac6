package agent

import "errors"

var (
	ERROR_BUSY            = errors.New("an apply is already running")
	ERROR_NOT_IMPORTED    = errors.New("component not imported")
	ERROR_NO_SNAPSHOT     = errors.New("no configuration imported")
	ERROR_BAD_PARAMETERS  = errors.New("wrong number of parameters")
	ERROR_NOTHING_APPLIED = errors.New("no asynchronous apply has run")
	ERROR_STOPPING        = errors.New("agent is shutting down")
)
