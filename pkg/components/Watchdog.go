package components

import (
	"context"
	"fmt"

	"github.com/simplecontainer/sapha/pkg/shell"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"github.com/simplecontainer/sapha/pkg/static"
)

const WATCHDOG_MODULES_LOAD = "/etc/modules-load.d/watchdog.conf"

func (watchdog *Watchdog) ID() string { return static.COMPONENT_WATCHDOG }

func (watchdog *Watchdog) Async(role string) bool { return false }

func (watchdog *Watchdog) Apply(ctx context.Context, s *snapshot.Snapshot, role string) error {
	if err := checkRole(role); err != nil {
		return err
	}

	c, err := component(s, watchdog.ID())

	if err != nil {
		return err
	}

	module := c.Params["module"]

	if _, err = watchdog.run(ctx, fmt.Sprintf("modinfo %s", module), shell.Options{}); err != nil {
		return fmt.Errorf("%w: watchdog module %s is not available on this node", ERROR_PRECONDITION, module)
	}

	if err = watchdog.write(WATCHDOG_MODULES_LOAD, module+"\n"); err != nil {
		return err
	}

	_, err = watchdog.run(ctx, fmt.Sprintf("modprobe %s", module), shell.Options{})
	return err
}
