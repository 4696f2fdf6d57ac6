package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/simplecontainer/sapha/pkg/shell"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"github.com/simplecontainer/sapha/pkg/static"
)

const CHRONY_CONFIG = "/etc/chrony.d/sapha.conf"

func (ntp *Ntp) ID() string { return static.COMPONENT_NTP }

func (ntp *Ntp) Async(role string) bool { return false }

func (ntp *Ntp) Apply(ctx context.Context, s *snapshot.Snapshot, role string) error {
	if err := checkRole(role); err != nil {
		return err
	}

	c, err := component(s, ntp.ID())

	if err != nil {
		return err
	}

	servers := strings.Fields(c.Params["servers"])

	if len(servers) == 0 {
		return fmt.Errorf("%w: no ntp servers configured", ERROR_PRECONDITION)
	}

	var config strings.Builder
	for _, server := range servers {
		config.WriteString(fmt.Sprintf("server %s iburst\n", server))
	}

	if err = ntp.write(CHRONY_CONFIG, config.String()); err != nil {
		return err
	}

	_, err = ntp.run(ctx, "systemctl enable --now chronyd", shell.Options{})
	return err
}
