package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/simplecontainer/sapha/pkg/shell"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"github.com/simplecontainer/sapha/pkg/static"
)

const HANA_CRM_CONFIG = "/var/lib/sapha/hana.crm"

func (hana *Hana) ID() string { return static.COMPONENT_HANA }

// Async is true on slaves: registering the secondary restarts the database.
func (hana *Hana) Async(role string) bool { return role == static.ROLE_SLAVE }

func (hana *Hana) Apply(ctx context.Context, s *snapshot.Snapshot, role string) error {
	if err := checkRole(role); err != nil {
		return err
	}

	c, err := component(s, hana.ID())

	if err != nil {
		return err
	}

	admin := shell.Options{AsUser: fmt.Sprintf("%sadm", strings.ToLower(c.Params["sid"]))}

	if role == static.ROLE_MASTER {
		return hana.primary(ctx, c, admin)
	}

	return hana.secondary(ctx, s, c, admin)
}

func (hana *Hana) primary(ctx context.Context, c snapshot.Component, admin shell.Options) error {
	if _, err := hana.run(ctx, fmt.Sprintf("hdbnsutil -sr_enable --name=%s", c.Params["site_primary"]), admin); err != nil {
		return err
	}

	if err := hana.write(HANA_CRM_CONFIG, RenderCrm(c)); err != nil {
		return err
	}

	_, err := hana.run(ctx, fmt.Sprintf("crm configure load update %s", HANA_CRM_CONFIG), shell.Options{})
	return err
}

func (hana *Hana) secondary(ctx context.Context, s *snapshot.Snapshot, c snapshot.Component, admin shell.Options) error {
	primary := c.Params["primary_host"]

	if primary == "" && len(s.Members) > 0 {
		primary = s.Members[0].Host
	}

	replication := c.Params["replication"]
	if replication == "" {
		replication = "sync"
	}

	operation := c.Params["operation"]
	if operation == "" {
		operation = "logreplay"
	}

	steps := []string{
		"HDB stop",
		fmt.Sprintf("hdbnsutil -sr_register --remoteHost=%s --remoteInstance=%s --replicationMode=%s --operationMode=%s --name=%s",
			primary, c.Params["instance"], replication, operation, c.Params["site_secondary"]),
		"HDB start",
	}

	for _, step := range steps {
		if _, err := hana.run(ctx, step, admin); err != nil {
			return err
		}
	}

	return nil
}

func RenderCrm(c snapshot.Component) string {
	sid := c.Params["sid"]
	instance := c.Params["instance"]

	return fmt.Sprintf(`primitive rsc_SAPHanaTopology_%[1]s_HDB%[2]s ocf:suse:SAPHanaTopology \
	params SID=%[1]s InstanceNumber=%[2]s
clone cln_SAPHanaTopology_%[1]s_HDB%[2]s rsc_SAPHanaTopology_%[1]s_HDB%[2]s \
	meta clone-node-max=1 interleave=true
primitive rsc_SAPHana_%[1]s_HDB%[2]s ocf:suse:SAPHana \
	params SID=%[1]s InstanceNumber=%[2]s PREFER_SITE_TAKEOVER=true AUTOMATED_REGISTER=false
ms msl_SAPHana_%[1]s_HDB%[2]s rsc_SAPHana_%[1]s_HDB%[2]s \
	meta clone-max=2 clone-node-max=1 interleave=true
primitive rsc_ip_%[1]s_HDB%[2]s ocf:heartbeat:IPaddr2 \
	params ip=%[3]s
colocation col_saphana_ip_%[1]s_HDB%[2]s 2000: rsc_ip_%[1]s_HDB%[2]s:Started msl_SAPHana_%[1]s_HDB%[2]s:Master
order ord_SAPHana_%[1]s_HDB%[2]s Optional: cln_SAPHanaTopology_%[1]s_HDB%[2]s msl_SAPHana_%[1]s_HDB%[2]s
`, sid, instance, c.Params["virtual_ip"])
}
