package node

func NewNodes() *Nodes {
	return &Nodes{}
}

// Add registers node, replacing an existing entry with the same host in place.
func (nodes *Nodes) Add(node *Node) {
	if node == nil {
		return
	}

	for i, n := range nodes.Nodes {
		if n.Host == node.Host {
			nodes.Nodes[i] = node
			return
		}
	}

	nodes.Nodes = append(nodes.Nodes, node)
}

func (nodes *Nodes) Remove(host string) {
	for i, n := range nodes.Nodes {
		if n.Host == host {
			nodes.Nodes = append(nodes.Nodes[:i], nodes.Nodes[i+1:]...)
			return
		}
	}
}

func (nodes *Nodes) Find(host string) *Node {
	for _, n := range nodes.Nodes {
		if n.Host == host {
			return n
		}
	}

	return nil
}

func (nodes *Nodes) Hosts() []string {
	hosts := make([]string, 0, len(nodes.Nodes))

	for _, n := range nodes.Nodes {
		hosts = append(hosts, n.Host)
	}

	return hosts
}
