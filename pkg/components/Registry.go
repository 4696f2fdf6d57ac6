package components

import (
	"fmt"
	"slices"

	"github.com/simplecontainer/sapha/pkg/static"
)

func NewRegistry(host *Host) *Registry {
	return NewRegistryFrom(
		&Ntp{host},
		&Watchdog{host},
		&Fencing{host},
		&Cluster{host},
		&Hana{host},
	)
}

func NewRegistryFrom(appliers ...Applier) *Registry {
	registry := &Registry{appliers: make(map[string]Applier)}

	for _, a := range appliers {
		registry.appliers[a.ID()] = a
	}

	return registry
}

func (registry *Registry) Get(id string) (Applier, error) {
	applier, ok := registry.appliers[id]

	if !ok {
		return nil, fmt.Errorf("%w: %s", ERROR_UNKNOWN_COMPONENT, id)
	}

	return applier, nil
}

// IDs lists known components in apply order.
func (registry *Registry) IDs() []string {
	ids := make([]string, 0, len(registry.appliers))

	for _, id := range static.COMPONENT_ORDER {
		if _, ok := registry.appliers[id]; ok {
			ids = append(ids, id)
		}
	}

	for id := range registry.appliers {
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	return ids
}
