package helpers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
)

var ERROR_LOCKED = errors.New("another sapha run holds the lock")

// Lock is an exclusive flock on a pid file. One installation runs per node.
type Lock struct {
	Path string
	file *os.File
	lock sync.Mutex
}

func NewLock(path string) *Lock {
	return &Lock{Path: path}
}

func (l *Lock) Acquire() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.file != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(l.Path), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	file, err := os.OpenFile(l.Path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}

	if err = syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		holder, _ := os.ReadFile(l.Path)
		file.Close()

		if errors.Is(err, syscall.EWOULDBLOCK) {
			return fmt.Errorf("%w: pid %s", ERROR_LOCKED, strings.TrimSpace(string(holder)))
		}

		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if err = file.Truncate(0); err == nil {
		_, err = fmt.Fprintf(file, "%d\n", os.Getpid())
	}

	if err != nil {
		syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
		file.Close()
		return fmt.Errorf("failed to write pid to lock file: %w", err)
	}

	l.file = file

	return nil
}

func (l *Lock) Release() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.file == nil {
		return nil
	}

	err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	l.file.Close()
	l.file = nil

	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}

	return nil
}
