package rpc

import "github.com/simplecontainer/sapha/pkg/static"

func Ok(value any) Response {
	return Response{Status: STATUS_OK, Value: value}
}

func Pending() Response {
	return Response{Status: STATUS_PENDING, Value: static.WAIT_SENTINEL}
}

func Failed(message string) Response {
	return Response{Status: STATUS_FAILED, Value: false, Error: message}
}

// IsPending is true for the typed pending status and for the bare "wait" value
// older peers send with an ok status.
func (response Response) IsPending() bool {
	if response.Status == STATUS_PENDING {
		return true
	}

	value, ok := response.Value.(string)

	return ok && value == static.WAIT_SENTINEL
}

// Succeeded reports an ok status carrying anything other than false.
func (response Response) Succeeded() bool {
	if response.Status != STATUS_OK || response.IsPending() {
		return false
	}

	if value, ok := response.Value.(bool); ok {
		return value
	}

	return true
}

func (response Response) Bool() bool {
	value, ok := response.Value.(bool)

	return ok && value
}

func (response Response) String() string {
	switch {
	case response.IsPending():
		return static.WAIT_SENTINEL
	case response.Error != "":
		return response.Error
	}

	switch value := response.Value.(type) {
	case bool:
		if value {
			return "true"
		}

		return "false"
	case string:
		return value
	}

	return string(response.Status)
}
