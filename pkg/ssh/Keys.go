package ssh

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"net"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	gossh "golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

func LoadSigner(path string) (gossh.Signer, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, pkgerrors.Wrap(err, "reading private key")
	}

	signer, err := gossh.ParsePrivateKey(data)

	if err != nil {
		return nil, pkgerrors.Wrap(err, "parsing private key")
	}

	return signer, nil
}

// EnsureKey returns the authorized_keys line for the key at path, creating an
// ed25519 pair first when none exists.
func EnsureKey(path string) ([]byte, error) {
	if signer, err := LoadSigner(path); err == nil {
		return gossh.MarshalAuthorizedKey(signer.PublicKey()), nil
	}

	public, private, err := ed25519.GenerateKey(rand.Reader)

	if err != nil {
		return nil, err
	}

	block, err := gossh.MarshalPrivateKey(private, "sapha")

	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	if err = os.WriteFile(path, pem.EncodeToMemory(block), 0600); err != nil {
		return nil, err
	}

	key, err := gossh.NewPublicKey(public)

	if err != nil {
		return nil, err
	}

	authorized := gossh.MarshalAuthorizedKey(key)

	if err = os.WriteFile(path+".pub", authorized, 0644); err != nil {
		return nil, err
	}

	return authorized, nil
}

// HostKeyCallback trusts keys already in the known_hosts file, records keys it
// has never seen and rejects keys that changed.
func HostKeyCallback(path string, logger *zap.Logger) (gossh.HostKeyCallback, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := touch(path); err != nil {
		return nil, err
	}

	return func(hostname string, remote net.Addr, key gossh.PublicKey) error {
		callback, err := knownhosts.New(path)

		if err != nil {
			return err
		}

		err = callback(hostname, remote, key)

		var keyErr *knownhosts.KeyError

		if errors.As(err, &keyErr) {
			if len(keyErr.Want) > 0 {
				return pkgerrors.Wrap(ERROR_HOST_KEY_CHANGED, hostname)
			}

			logger.Info("adding new host key", zap.String("hostname", hostname))

			return addHostKey(path, hostname, key)
		}

		return err
	}, nil
}

func touch(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0600)

	if err != nil {
		return err
	}

	return file.Close()
}

func addHostKey(path string, hostname string, key gossh.PublicKey) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0600)

	if err != nil {
		return err
	}

	defer file.Close()

	_, err = file.WriteString(knownhosts.Line([]string{knownhosts.Normalize(hostname)}, key) + "\n")

	return err
}
