package snapshot_test

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/simplecontainer/sapha/pkg/snapshot"
	"github.com/simplecontainer/sapha/pkg/snapshot/mock"
	"github.com/simplecontainer/sapha/pkg/static"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	testCases := []struct {
		name     string
		snapshot *snapshot.Snapshot
	}{
		{"Two node cluster", mock.TwoNode()},
		{"Three node cluster with secondary ring", mock.ThreeNode()},
		{
			"Component without parameters",
			snapshot.New(static.PRODUCT_HANA, static.SCENARIO_COST_OPT, []snapshot.Member{
				{Host: "a", IPs: []string{"10.1.1.1"}},
				{Host: "b", IPs: []string{"10.1.1.2"}},
			}, []snapshot.Component{snapshot.NewComponent(static.COMPONENT_NTP, "NTP", nil)}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := tc.snapshot.Marshal()
			require.NoError(t, err)

			decoded, err := snapshot.Unmarshal(data)
			require.NoError(t, err)

			assert.Equal(t, tc.snapshot, decoded)
			assert.Equal(t, tc.snapshot.ComponentIDs(), decoded.ComponentIDs())
		})
	}
}

func TestRoleIsNotSerialized(t *testing.T) {
	s := mock.TwoNode().WithRole(static.ROLE_SLAVE)

	data, err := s.Marshal()
	require.NoError(t, err)

	decoded, err := snapshot.Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, "", decoded.Role)
	assert.Equal(t, static.ROLE_SLAVE, s.Role)
}

func TestUnmarshalRejectsUnknownVersion(t *testing.T) {
	_, err := snapshot.Unmarshal([]byte("version: 7\nproduct: HANA\n"))
	assert.ErrorIs(t, err, snapshot.ERROR_VERSION_MISMATCH)

	_, err = snapshot.Unmarshal([]byte("version: [\n"))
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "previous.yaml")
	original := mock.ThreeNode()

	require.NoError(t, original.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := snapshot.Load(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)

	_, err = snapshot.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewSortsIntoApplyOrder(t *testing.T) {
	components := mock.Components()
	reversed := make([]snapshot.Component, 0, len(components))

	for i := len(components) - 1; i >= 0; i-- {
		reversed = append(reversed, components[i])
	}

	s := snapshot.New(static.PRODUCT_HANA, static.SCENARIO_PERF_OPT, mock.TwoNode().Members, reversed)

	assert.Equal(t, static.COMPONENT_ORDER, s.ComponentIDs())
}

func TestLoadSortsIntoApplyOrder(t *testing.T) {
	s := mock.TwoNode()
	slices.Reverse(s.Components)

	data, err := s.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cluster.yaml")
	require.NoError(t, os.WriteFile(path, data, 0600))

	loaded, err := snapshot.Load(path)
	require.NoError(t, err)

	assert.Equal(t, static.COMPONENT_ORDER, loaded.ComponentIDs())
	assert.Empty(t, loaded.Validate())
}

func TestCheck(t *testing.T) {
	assert.NoError(t, mock.TwoNode().Check())

	invalid := mock.TwoNode()
	delete(invalid.Components[4].Params, "sid")

	err := invalid.Check()
	assert.ErrorIs(t, err, snapshot.ERROR_INVALID)
	assert.ErrorContains(t, err, "missing required parameter sid")
}

func TestCloneIsDeep(t *testing.T) {
	original := mock.TwoNode()
	clone := original.Clone()

	clone.Components[0].Params["servers"] = "changed"
	clone.Members[0].IPs[0] = "127.0.0.1"

	assert.Equal(t, "0.pool.ntp.org 1.pool.ntp.org", original.Components[0].Params["servers"])
	assert.Equal(t, "192.168.100.11", original.Members[0].IPs[0])
}

func TestOthers(t *testing.T) {
	s := mock.ThreeNode()

	others := s.Others("hana02")

	require.Len(t, others, 2)
	assert.Equal(t, "hana01", others[0].Host)
	assert.Equal(t, "hana03", others[1].Host)

	assert.Len(t, s.Others("not-a-member"), 3)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(s *snapshot.Snapshot)
		contains string
	}{
		{
			"Valid snapshot",
			func(s *snapshot.Snapshot) {},
			"",
		},
		{
			"Missing HANA SID",
			func(s *snapshot.Snapshot) {
				delete(s.Components[4].Params, "sid")
			},
			"missing required parameter sid",
		},
		{
			"Invalid instance number",
			func(s *snapshot.Snapshot) {
				s.Components[4].Params["instance"] = "7"
			},
			"invalid instance number",
		},
		{
			"Single member",
			func(s *snapshot.Snapshot) {
				s.Members = s.Members[:1]
			},
			"Snapshot.Members",
		},
		{
			"Invalid member IP",
			func(s *snapshot.Snapshot) {
				s.Members[1].IPs = []string{"not-an-ip"}
			},
			"Snapshot.Members[1].IPs[0]",
		},
		{
			"Out of order components",
			func(s *snapshot.Snapshot) {
				s.Components[0], s.Components[4] = s.Components[4], s.Components[0]
			},
			"out of order",
		},
		{
			"Duplicate member",
			func(s *snapshot.Snapshot) {
				s.Members[1].Host = s.Members[0].Host
			},
			"listed more than once",
		},
		{
			"Unconfigured component",
			func(s *snapshot.Snapshot) {
				s.Components[1].Configured = false
			},
			"watchdog is not configured",
		},
		{
			"Unknown component",
			func(s *snapshot.Snapshot) {
				s.Components = append(s.Components, snapshot.NewComponent("saptune", "", nil))
			},
			"oneof",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := mock.TwoNode()
			tc.mutate(s)

			messages := s.Validate()

			if tc.contains == "" {
				assert.Empty(t, messages)
				return
			}

			assert.NotEmpty(t, messages)

			found := false
			for _, m := range messages {
				if strings.Contains(m, tc.contains) {
					found = true
				}
			}

			assert.True(t, found, "expected a message containing %q, got %v", tc.contains, messages)
		})
	}
}

func TestDiff(t *testing.T) {
	previous := mock.TwoNode()
	current := previous.Clone()
	current.Components[4].Params["sid"] = "HA2"

	changes, err := snapshot.Diff(previous, current)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Contains(t, changes[0], "sid")
	assert.Contains(t, changes[0], "HA2")

	changes, err = snapshot.Diff(previous, previous.Clone())
	require.NoError(t, err)
	assert.Empty(t, changes)
}
