package ssh

import (
	"context"
	"fmt"
	"net"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/simplecontainer/sapha/pkg/shell"
	"github.com/simplecontainer/sapha/pkg/static"
	"go.uber.org/zap"
	gossh "golang.org/x/crypto/ssh"
)

func DefaultConfig() Config {
	return Config{
		User:        static.DEFAULT_SSH_USER,
		KeyPath:     filepath.Join(static.SAPHA_HOME, static.SSHDIR, "id_ed25519"),
		KnownHosts:  filepath.Join(static.SAPHA_HOME, static.SSHDIR, "known_hosts"),
		Port:        static.DEFAULT_SSH_PORT,
		Timeout:     static.DEFAULT_SSH_TIMEOUT,
		AgentBinary: static.DEFAULT_AGENT_BINARY,
		AgentPort:   static.RPC_PORT,
		LogLevel:    static.DEFAULT_LOG_LEVEL,
		AgentLog:    filepath.Join(static.SAPHA_HOME, static.ROOTDIR, static.LOGDIR, "agent.log"),
	}
}

func New(config Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		Config: config,
		Logger: logger,
		dial:   dialContext,
	}
}

// EnsureTrust makes key based login to host work. When the key is refused the
// password is used once to install the local public key on the peer.
func (client *Client) EnsureTrust(ctx context.Context, host string, ips []string) error {
	if err := client.withKey(ctx, host, ips, func(*gossh.Client) error { return nil }); err == nil {
		return nil
	} else if errors.Is(err, ERROR_HOST_KEY_CHANGED) {
		return err
	}

	if client.Config.Password == "" {
		return errors.Wrapf(ERROR_NO_TRUST, "ssh %s", host)
	}

	public, err := EnsureKey(client.Config.KeyPath)

	if err != nil {
		return err
	}

	conn, err := client.connect(ctx, host, ips, []gossh.AuthMethod{gossh.Password(client.Config.Password)})

	if err != nil {
		return errors.Wrapf(err, "ssh %s with password", host)
	}

	defer conn.Close()

	if _, err = run(ctx, conn, AuthorizeCommand(public)); err != nil {
		return errors.Wrapf(err, "installing public key on %s", host)
	}

	client.Logger.Info("installed public key on node", zap.String("node", host))

	return nil
}

// StartAgent launches the remote RPC listener detached from the session.
func (client *Client) StartAgent(ctx context.Context, host string, ips []string) error {
	return client.withKey(ctx, host, ips, func(conn *gossh.Client) error {
		output, err := run(ctx, conn, client.AgentCommand())

		if err != nil {
			return errors.Wrapf(err, "starting agent on %s: %s", host, output)
		}

		client.Logger.Info("started remote agent", zap.String("node", host), zap.Int("port", client.Config.AgentPort))

		return nil
	})
}

// StopAgent terminates a remote agent started by StartAgent. No running agent is not an error.
func (client *Client) StopAgent(ctx context.Context, host string, ips []string) error {
	return client.withKey(ctx, host, ips, func(conn *gossh.Client) error {
		output, err := run(ctx, conn, client.StopCommand())

		if err != nil {
			return errors.Wrapf(err, "stopping agent on %s: %s", host, output)
		}

		client.Logger.Info("stopped remote agent", zap.String("node", host))

		return nil
	})
}

// CheckReachable opens and closes one session using whatever credentials are configured.
func (client *Client) CheckReachable(ctx context.Context, host string, ips []string) error {
	conn, err := client.connect(ctx, host, ips, client.methods())

	if err != nil {
		return errors.Wrapf(err, "ssh %s unreachable", host)
	}

	return conn.Close()
}

func (client *Client) AgentCommand() string {
	argv := []string{client.Config.AgentBinary, "agent", "--port", strconv.Itoa(client.Config.AgentPort), "--log", client.Config.LogLevel}

	if client.Config.AgentLog != "" {
		argv = append(argv, "--log-file", client.Config.AgentLog)
	}

	return fmt.Sprintf("nohup %s > /var/log/sapha-agent.log 2>&1 < /dev/null &", shell.Quote(argv))
}

// StopCommand sends SIGTERM so the agent closes its firewall rule on the way out.
func (client *Client) StopCommand() string {
	binary := client.Config.AgentBinary

	// the bracket keeps the pattern from matching the shell running pkill
	if binary != "" {
		binary = "[" + binary[:1] + "]" + binary[1:]
	}

	pattern := fmt.Sprintf("%s agent --port %d", binary, client.Config.AgentPort)

	return fmt.Sprintf("%s || true", shell.Quote([]string{"pkill", "-TERM", "-f", pattern}))
}

func AuthorizeCommand(public []byte) string {
	key := shell.Quote([]string{string(trimNewline(public))})

	return fmt.Sprintf("mkdir -p ~/.ssh && chmod 700 ~/.ssh && (grep -qxF %s ~/.ssh/authorized_keys 2>/dev/null || echo %s >> ~/.ssh/authorized_keys) && chmod 600 ~/.ssh/authorized_keys", key, key)
}

func (client *Client) withKey(ctx context.Context, host string, ips []string, fn func(*gossh.Client) error) error {
	signer, err := LoadSigner(client.Config.KeyPath)

	if err != nil {
		return err
	}

	conn, err := client.connect(ctx, host, ips, []gossh.AuthMethod{gossh.PublicKeys(signer)})

	if err != nil {
		return err
	}

	defer conn.Close()

	return fn(conn)
}

func (client *Client) methods() []gossh.AuthMethod {
	var methods []gossh.AuthMethod

	if signer, err := LoadSigner(client.Config.KeyPath); err == nil {
		methods = append(methods, gossh.PublicKeys(signer))
	}

	if client.Config.Password != "" {
		methods = append(methods, gossh.Password(client.Config.Password))
	}

	return methods
}

func (client *Client) connect(ctx context.Context, host string, ips []string, methods []gossh.AuthMethod) (*gossh.Client, error) {
	address := host

	if len(ips) > 0 {
		address = ips[0]
	}

	if address == "" {
		return nil, ERROR_NO_ADDRESS
	}

	callback, err := HostKeyCallback(client.Config.KnownHosts, client.Logger)

	if err != nil {
		return nil, err
	}

	config := &gossh.ClientConfig{
		User:            client.Config.User,
		Auth:            methods,
		HostKeyCallback: callback,
		Timeout:         client.Config.Timeout,
	}

	return client.dial(ctx, net.JoinHostPort(address, strconv.Itoa(client.Config.Port)), config)
}

func dialContext(ctx context.Context, address string, config *gossh.ClientConfig) (*gossh.Client, error) {
	dialer := net.Dialer{Timeout: config.Timeout}

	conn, err := dialer.DialContext(ctx, "tcp", address)

	if err != nil {
		return nil, err
	}

	c, chans, reqs, err := gossh.NewClientConn(conn, address, config)

	if err != nil {
		conn.Close()
		return nil, err
	}

	return gossh.NewClient(c, chans, reqs), nil
}

func run(ctx context.Context, conn *gossh.Client, command string) (string, error) {
	session, err := conn.NewSession()

	if err != nil {
		return "", err
	}

	defer session.Close()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			session.Close()
		case <-done:
		}
	}()

	output, err := session.CombinedOutput(command)

	return string(output), err
}

func trimNewline(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}

	return b
}
