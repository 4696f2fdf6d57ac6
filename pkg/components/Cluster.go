package components

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/simplecontainer/sapha/pkg/shell"
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"github.com/simplecontainer/sapha/pkg/static"
)

const COROSYNC_CONFIG = "/etc/corosync/corosync.conf"

var corosyncTemplate = template.Must(template.New("corosync").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`totem {
	version: 2
	cluster_name: {{ .Name }}
	transport: {{ .Transport }}
	token: 5000
	consensus: 6000
}

nodelist {
{{- range $i, $m := .Members }}
	node {
		name: {{ $m.Host }}
		nodeid: {{ inc $i }}
{{- range $r, $ip := $m.IPs }}
		ring{{ $r }}_addr: {{ $ip }}
{{- end }}
	}
{{- end }}
}

quorum {
	provider: corosync_votequorum
	expected_votes: {{ .Expected }}
	two_node: {{ .TwoNode }}
}
`))

func (cluster *Cluster) ID() string { return static.COMPONENT_CLUSTER }

func (cluster *Cluster) Async(role string) bool { return false }

func (cluster *Cluster) Apply(ctx context.Context, s *snapshot.Snapshot, role string) error {
	if err := checkRole(role); err != nil {
		return err
	}

	c, err := component(s, cluster.ID())

	if err != nil {
		return err
	}

	config, err := RenderCorosync(c, s.Members)

	if err != nil {
		return err
	}

	if err = cluster.write(COROSYNC_CONFIG, config); err != nil {
		return err
	}

	_, err = cluster.run(ctx, "systemctl enable --now pacemaker", shell.Options{})
	return err
}

func RenderCorosync(c snapshot.Component, members []snapshot.Member) (string, error) {
	transport := c.Params["transport"]

	if transport == "" {
		transport = "udpu"
	}

	twoNode := 0
	if len(members) == 2 {
		twoNode = 1
	}

	var out strings.Builder

	err := corosyncTemplate.Execute(&out, map[string]any{
		"Name":      c.Params["cluster_name"],
		"Transport": transport,
		"Members":   members,
		"Expected":  len(members),
		"TwoNode":   twoNode,
	})

	if err != nil {
		return "", fmt.Errorf("failed to render corosync configuration: %w", err)
	}

	return out.String(), nil
}
