package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	SessionFileName = ".tasknotes.yaml"
	DefaultServer   = "http://localhost:8080"
)

// Session is what the command-line client remembers between runs.
type Session struct {
	Server string `yaml:"server"`
	Token  string `yaml:"token,omitempty"`
	Email  string `yaml:"email,omitempty"`
}

func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return SessionFileName
	}

	return filepath.Join(home, SessionFileName)
}

// LoadSession reads the session file. A missing file yields an empty session.
func LoadSession(path string) (Session, error) {
	session := Session{Server: DefaultServer}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return session, nil
	}
	if err != nil {
		return session, fmt.Errorf("read session: %w", err)
	}

	if err := yaml.Unmarshal(data, &session); err != nil {
		return Session{Server: DefaultServer}, fmt.Errorf("parse session %s: %w", path, err)
	}

	if session.Server == "" {
		session.Server = DefaultServer
	}

	return session, nil
}

func (s Session) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	return nil
}

func (s Session) SignedIn() bool {
	return s.Token != ""
}

// Client returns an API client carrying the session token.
func (s Session) Client() *APIClient {
	return New(s.Server, s.Token)
}
