package ssh

import "errors"

var (
	ERROR_NO_TRUST         = errors.New("no key based trust and no password supplied")
	ERROR_HOST_KEY_CHANGED = errors.New("remote host key does not match known_hosts")
	ERROR_NO_ADDRESS       = errors.New("node has no address")
)
