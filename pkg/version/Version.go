package version

import (
	"fmt"
	"runtime"
	"strings"
)

type Version struct {
	Sapha string
	Go    string
}

func New(version string) *Version {
	return &Version{
		Sapha: strings.TrimSpace(version),
		Go:    runtime.Version(),
	}
}

func (version *Version) String() string {
	return fmt.Sprintf("sapha %s (%s)", version.Sapha, version.Go)
}
