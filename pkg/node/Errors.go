package node

import "errors"

var (
	ERROR_ALREADY_CONNECTED = errors.New("node already connected")
	ERROR_NOT_CONNECTED     = errors.New("node not connected")
	ERROR_FATAL_CONNECTION  = errors.New("fatal connection failure")
	ERROR_FATAL_CALL        = errors.New("fatal rpc failure")
	ERROR_STILL_BUSY        = errors.New("node still busy")
	ERROR_NODE_BUSY         = errors.New("node is busy")
)
