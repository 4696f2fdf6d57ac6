package mock

import (
	"github.com/simplecontainer/sapha/pkg/snapshot"
	"github.com/simplecontainer/sapha/pkg/static"
)

func Components() []snapshot.Component {
	return []snapshot.Component{
		snapshot.NewComponent(static.COMPONENT_NTP, "NTP Configuration", map[string]string{
			"servers": "0.pool.ntp.org 1.pool.ntp.org",
		}),
		snapshot.NewComponent(static.COMPONENT_WATCHDOG, "Watchdog Setup", map[string]string{
			"module": "softdog",
		}),
		snapshot.NewComponent(static.COMPONENT_FENCING, "Fencing Mechanism", map[string]string{
			"device":  "/dev/disk/by-id/scsi-sbd-1",
			"timeout": "15",
		}),
		snapshot.NewComponent(static.COMPONENT_CLUSTER, "Communication Layer", map[string]string{
			"cluster_name": "hacluster",
			"transport":    "udpu",
			"expected":     "2",
		}),
		snapshot.NewComponent(static.COMPONENT_HANA, "HANA Configuration", map[string]string{
			"sid":            "HA1",
			"instance":       "10",
			"site_primary":   "WALLDORF",
			"site_secondary": "ROT",
			"virtual_ip":     "192.168.100.50",
			"replication":    "sync",
			"operation":      "logreplay",
		}),
	}
}

func TwoNode() *snapshot.Snapshot {
	return snapshot.New(static.PRODUCT_HANA, static.SCENARIO_PERF_OPT, []snapshot.Member{
		{Host: "hana01", IPs: []string{"192.168.100.11"}},
		{Host: "hana02", IPs: []string{"192.168.100.12"}},
	}, Components())
}

func ThreeNode() *snapshot.Snapshot {
	return snapshot.New(static.PRODUCT_HANA, static.SCENARIO_PERF_OPT, []snapshot.Member{
		{Host: "hana01", IPs: []string{"192.168.100.11", "10.0.0.11"}},
		{Host: "hana02", IPs: []string{"192.168.100.12", "10.0.0.12"}},
		{Host: "hana03", IPs: []string{"192.168.100.13", "10.0.0.13"}},
	}, Components())
}
