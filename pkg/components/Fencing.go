package components

import (
	"context"
	"fmt"
	"strconv"

	"github.com/simplecontainer/sapha/pkg/shell"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"github.com/simplecontainer/sapha/pkg/static"
)

const SBD_SYSCONFIG = "/etc/sysconfig/sbd"

func (fencing *Fencing) ID() string { return static.COMPONENT_FENCING }

func (fencing *Fencing) Async(role string) bool { return false }

// Apply initializes the SBD device on the master only; every node gets the sysconfig.
func (fencing *Fencing) Apply(ctx context.Context, s *snapshot.Snapshot, role string) error {
	if err := checkRole(role); err != nil {
		return err
	}

	c, err := component(s, fencing.ID())

	if err != nil {
		return err
	}

	device := c.Params["device"]
	timeout := 15

	if raw, ok := c.Params["timeout"]; ok && raw != "" {
		timeout, err = strconv.Atoi(raw)

		if err != nil || timeout <= 0 {
			return fmt.Errorf("%w: invalid sbd timeout %q", ERROR_PRECONDITION, raw)
		}
	}

	if role == static.ROLE_MASTER {
		create := fmt.Sprintf("sbd -d %s -1 %d -4 %d create", device, timeout, timeout*2)

		if _, err = fencing.run(ctx, create, shell.Options{}); err != nil {
			return err
		}
	}

	config := fmt.Sprintf("SBD_DEVICE=%q\nSBD_WATCHDOG_DEV=/dev/watchdog\nSBD_WATCHDOG_TIMEOUT=%d\nSBD_STARTMODE=always\n", device, timeout)

	if err = fencing.write(SBD_SYSCONFIG, config); err != nil {
		return err
	}

	_, err = fencing.run(ctx, "systemctl enable sbd", shell.Options{})
	return err
}
