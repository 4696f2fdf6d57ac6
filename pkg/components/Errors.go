package components

import "errors"

var (
	ERROR_COMPONENT_MISSING = errors.New("component not present in snapshot")
	ERROR_UNKNOWN_COMPONENT = errors.New("unknown component")
	ERROR_COMMAND_FAILED    = errors.New("command failed")
	ERROR_PRECONDITION      = errors.New("precondition not met")
	ERROR_UNKNOWN_ROLE      = errors.New("unknown role")
)
