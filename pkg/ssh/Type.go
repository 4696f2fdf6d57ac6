package ssh

import (
	"context"
	"time"

	"go.uber.org/zap"
	gossh "golang.org/x/crypto/ssh"
)

type Config struct {
	User        string
	Password    string
	KeyPath     string
	KnownHosts  string
	Port        int
	Timeout     time.Duration
	AgentBinary string
	AgentPort   int
	LogLevel    string
	AgentLog    string
}

// Client bootstraps peers over SSH: trust, reachability and agent start.
type Client struct {
	Config Config
	Logger *zap.Logger
	dial   func(ctx context.Context, address string, config *gossh.ClientConfig) (*gossh.Client, error)
}
