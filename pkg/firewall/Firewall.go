package firewall

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/coreos/go-iptables/iptables"
	"github.com/pkg/errors"
	"github.com/simplecontainer/sapha/pkg/shell"
	"go.uber.org/zap"
)

func New(runner shell.Runner, port int, logger *zap.Logger) *Firewall {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Firewall{
		Runner: runner,
		Logger: logger,
		Rule: Rule{
			Protocol: "tcp",
			Port:     port,
			Action:   "ACCEPT",
		},
		Tables: func() (Tables, error) {
			return iptables.New()
		},
	}
}

// Open makes sure the rule exists. A rule that was already present is left
// alone on Close.
func (firewall *Firewall) Open(ctx context.Context) error {
	firewall.lock.Lock()
	defer firewall.lock.Unlock()

	if err := firewall.detect(ctx); err != nil {
		return err
	}

	present, err := firewall.exists(ctx)

	if err != nil {
		return err
	}

	if present {
		firewall.Logger.Info("firewall rule already present", zap.String("backend", firewall.backend), zap.Int("port", firewall.Rule.Port))
		return nil
	}

	if err = firewall.add(ctx); err != nil {
		return errors.Wrapf(err, "failed to open %s", firewall.port())
	}

	firewall.opened = true
	firewall.Logger.Info("firewall rule added", zap.String("backend", firewall.backend), zap.Int("port", firewall.Rule.Port))

	return nil
}

func (firewall *Firewall) Close(ctx context.Context) error {
	firewall.lock.Lock()
	defer firewall.lock.Unlock()

	if !firewall.opened {
		return nil
	}

	present, err := firewall.exists(ctx)

	if err != nil {
		return err
	}

	if !present {
		firewall.opened = false
		return nil
	}

	if err = firewall.remove(ctx); err != nil {
		return errors.Wrapf(err, "failed to close %s", firewall.port())
	}

	firewall.opened = false
	firewall.Logger.Info("firewall rule removed", zap.String("backend", firewall.backend), zap.Int("port", firewall.Rule.Port))

	return nil
}

func (firewall *Firewall) Backend() string {
	return firewall.backend
}

func (firewall *Firewall) detect(ctx context.Context) error {
	if firewall.backend != "" {
		return nil
	}

	if firewall.run(ctx, []string{"firewall-cmd", "--state"}).Success() {
		firewall.backend = BACKEND_FIREWALLD
		return nil
	}

	tables, err := firewall.Tables()

	if err != nil {
		return errors.Wrap(err, "no firewall backend available")
	}

	firewall.backend = BACKEND_IPTABLES
	firewall.tables = tables

	return nil
}

func (firewall *Firewall) run(ctx context.Context, argv []string) shell.Result {
	return firewall.Runner.Run(ctx, argv, shell.Options{})
}

func (firewall *Firewall) port() string {
	return fmt.Sprintf("%d/%s", firewall.Rule.Port, firewall.Rule.Protocol)
}

func (firewall *Firewall) rulespec() []string {
	return []string{"-p", firewall.Rule.Protocol, "--dport", strconv.Itoa(firewall.Rule.Port), "-j", firewall.Rule.Action}
}

func (firewall *Firewall) exists(ctx context.Context) (bool, error) {
	if firewall.backend == BACKEND_FIREWALLD {
		return firewall.run(ctx, []string{"firewall-cmd", "--query-port=" + firewall.port()}).Success(), nil
	}

	return firewall.tables.Exists(TABLE_FILTER, CHAIN_INPUT, firewall.rulespec()...)
}

func (firewall *Firewall) add(ctx context.Context) error {
	if firewall.backend == BACKEND_FIREWALLD {
		return firewall.firewalld(ctx, "--add-port="+firewall.port())
	}

	return firewall.tables.Insert(TABLE_FILTER, CHAIN_INPUT, 1, firewall.rulespec()...)
}

func (firewall *Firewall) remove(ctx context.Context) error {
	if firewall.backend == BACKEND_FIREWALLD {
		return firewall.firewalld(ctx, "--remove-port="+firewall.port())
	}

	return firewall.tables.DeleteIfExists(TABLE_FILTER, CHAIN_INPUT, firewall.rulespec()...)
}

func (firewall *Firewall) firewalld(ctx context.Context, arg string) error {
	result := firewall.run(ctx, []string{"firewall-cmd", arg})

	if !result.Success() {
		return errors.New(strings.TrimSpace(result.Output))
	}

	return nil
}
