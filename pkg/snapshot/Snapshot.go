package snapshot

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/r3labs/diff/v3"
	"github.com/simplecontainer/sapha/pkg/static"
	"gopkg.in/yaml.v3"
)

func New(product string, scenario string, members []Member, components []Component) *Snapshot {
	s := &Snapshot{
		Version:    static.SNAPSHOT_VERSION,
		Product:    product,
		Scenario:   scenario,
		Members:    members,
		Components: components,
	}

	s.normalize()
	s.Sort()

	return s
}

func NewComponent(id string, name string, params map[string]string) Component {
	if params == nil {
		params = map[string]string{}
	}

	return Component{
		ID:         id,
		Name:       name,
		Params:     params,
		Configured: true,
	}
}

// Sort orders components by the fixed apply order; unknown ids go last in input order.
func (s *Snapshot) Sort() {
	slices.SortStableFunc(s.Components, func(a, b Component) int {
		return orderOf(a.ID) - orderOf(b.ID)
	})
}

func orderOf(id string) int {
	i := slices.Index(static.COMPONENT_ORDER, id)

	if i == -1 {
		return len(static.COMPONENT_ORDER)
	}

	return i
}

func (s *Snapshot) normalize() {
	for i := range s.Components {
		if s.Components[i].Params == nil {
			s.Components[i].Params = map[string]string{}
		}
	}
}

func (s *Snapshot) Marshal() ([]byte, error) {
	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(s); err != nil {
		return nil, errors.Wrap(err, "failed to serialize snapshot")
	}

	if err := encoder.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to serialize snapshot")
	}

	return buf.Bytes(), nil
}

func Unmarshal(data []byte) (*Snapshot, error) {
	s := &Snapshot{}

	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, errors.Wrap(err, "failed to deserialize snapshot")
	}

	if s.Version != static.SNAPSHOT_VERSION {
		return nil, fmt.Errorf("%w: got %d, want %d", ERROR_VERSION_MISMATCH, s.Version, static.SNAPSHOT_VERSION)
	}

	s.normalize()
	s.Sort()

	return s, nil
}

func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	return Unmarshal(data)
}

func (s *Snapshot) Save(path string) error {
	data, err := s.Marshal()

	if err != nil {
		return err
	}

	return errors.Wrapf(os.WriteFile(path, data, 0600), "failed to write %s", path)
}

func (s *Snapshot) Clone() *Snapshot {
	c := *s

	c.Members = make([]Member, len(s.Members))
	for i, m := range s.Members {
		c.Members[i] = Member{Host: m.Host, IPs: slices.Clone(m.IPs)}
	}

	c.Components = make([]Component, len(s.Components))
	for i, component := range s.Components {
		c.Components[i] = component
		c.Components[i].Params = make(map[string]string, len(component.Params))

		for k, v := range component.Params {
			c.Components[i].Params[k] = v
		}
	}

	return &c
}

// WithRole returns a copy carrying the role assigned to the node that will apply it.
func (s *Snapshot) WithRole(role string) *Snapshot {
	c := s.Clone()
	c.Role = role

	return c
}

func (s *Snapshot) Membership() []Member {
	return s.Clone().Members
}

func (s *Snapshot) ComponentIDs() []string {
	ids := make([]string, 0, len(s.Components))

	for _, c := range s.Components {
		ids = append(ids, c.ID)
	}

	return ids
}

func (s *Snapshot) Component(id string) (Component, bool) {
	for _, c := range s.Components {
		if c.ID == id {
			return c, true
		}
	}

	return Component{}, false
}

func (s *Snapshot) Member(host string) (Member, bool) {
	for _, m := range s.Members {
		if m.Host == host {
			return m, true
		}
	}

	return Member{}, false
}

// Others returns every member except the local one, in membership order.
func (s *Snapshot) Others(local string) []Member {
	others := make([]Member, 0, len(s.Members))

	for _, m := range s.Membership() {
		if m.Host != local {
			others = append(others, m)
		}
	}

	return others
}

func Diff(previous *Snapshot, current *Snapshot) ([]string, error) {
	changelog, err := diff.Diff(previous, current)

	if err != nil {
		return nil, errors.Wrap(err, "failed to diff snapshots")
	}

	changes := make([]string, 0, len(changelog))

	for _, change := range changelog {
		changes = append(changes, fmt.Sprintf("%s %s: %v -> %v", change.Type, strings.Join(change.Path, "."), change.From, change.To))
	}

	return changes, nil
}
