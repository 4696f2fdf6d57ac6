package orchestrator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ERROR_PREFLIGHT    = errors.New("preflight checks failed")
	ERROR_LOCAL_MEMBER = errors.New("local host is not a cluster member")
)

func (e *PreflightError) Error() string {
	return fmt.Sprintf("%s: %s", ERROR_PREFLIGHT, strings.Join(e.Messages, "; "))
}

func (e *PreflightError) Unwrap() error {
	return ERROR_PREFLIGHT
}
