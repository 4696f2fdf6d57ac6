package snapshot

// Snapshot is the ordered bundle of component configurations sent from the
// master to every slave. Role is assigned per node and never serialized.
type Snapshot struct {
	Version    int         `yaml:"version" json:"version" diff:"version" validate:"required,eq=1"`
	Product    string      `yaml:"product" json:"product" diff:"product" validate:"required"`
	Scenario   string      `yaml:"scenario" json:"scenario" diff:"scenario" validate:"required,oneof=performance-optimized cost-optimized chained"`
	Members    []Member    `yaml:"members" json:"members" diff:"members" validate:"required,min=2,dive"`
	Components []Component `yaml:"components" json:"components" diff:"components" validate:"required,min=1,dive"`
	Role       string      `yaml:"-" json:"-" diff:"-"`
}

type Member struct {
	Host string   `yaml:"host" json:"host" diff:"host,identifier" validate:"required,hostname_rfc1123"`
	IPs  []string `yaml:"ips" json:"ips" diff:"ips" validate:"required,min=1,max=2,dive,ip"`
}

type Component struct {
	ID         string            `yaml:"id" json:"id" diff:"id,identifier" validate:"required,oneof=ntp watchdog fencing cluster hana"`
	Name       string            `yaml:"name" json:"name" diff:"name"`
	Params     map[string]string `yaml:"params" json:"params" diff:"params"`
	Configured bool              `yaml:"configured" json:"configured" diff:"configured"`
}
