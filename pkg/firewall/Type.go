package firewall

import (
	"sync"

	"github.com/simplecontainer/sapha/pkg/shell"
	"go.uber.org/zap"
)

const (
	BACKEND_FIREWALLD = "firewalld"
	BACKEND_IPTABLES  = "iptables"
)

const TABLE_FILTER = "filter"
const CHAIN_INPUT = "INPUT"

// Rule is matched by protocol, port and action; no handle is stored.
type Rule struct {
	Protocol string
	Port     int
	Action   string
}

// Tables is the subset of *iptables.IPTables the firewall uses.
type Tables interface {
	Exists(table, chain string, rulespec ...string) (bool, error)
	Insert(table, chain string, pos int, rulespec ...string) error
	DeleteIfExists(table, chain string, rulespec ...string) error
}

type Firewall struct {
	Runner  shell.Runner
	Logger  *zap.Logger
	Rule    Rule
	Tables  func() (Tables, error)
	backend string
	tables  Tables
	opened  bool
	lock    sync.Mutex
}
