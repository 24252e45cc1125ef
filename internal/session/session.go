package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pcanos/charla/model"
)

// persisted is what survives restarts: the credential token and the
// wallpaper preference, nothing else.
type persisted struct {
	Token     string `json:"token,omitempty"`
	Wallpaper string `json:"wallpaper,omitempty"`
}

// Store holds the authenticated session for the process lifetime and keeps
// the persisted client state in a JSON file.
type Store struct {
	mu    sync.RWMutex
	sess  *model.Session
	file  string
	state persisted
}

// Open loads the state file, creating the enclosing directory if needed.
// An empty path picks a default under the user config dir.
func Open(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "charla", "state.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	s := &Store{file: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		// A corrupt state file is not worth failing startup over.
		s.state = persisted{}
	}
	return s, nil
}

func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.file, data, 0o600)
}

// Current returns the in-memory session, if any.
func (s *Store) Current() (model.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return model.Session{}, false
	}
	return *s.sess, true
}

// SetSession installs the session after a successful login and persists
// its token.
func (s *Store) SetSession(sess model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := sess
	s.sess = &cp
	s.state.Token = sess.Token
	return s.saveLocked()
}

// Clear destroys the session and forgets the token. The wallpaper
// preference is kept; logout is not a reset of cosmetics.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	s.state.Token = ""
	return s.saveLocked()
}

// Token returns the persisted credential, which may outlive the process
// that created it.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

func (s *Store) Wallpaper() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Wallpaper
}

func (s *Store) SetWallpaper(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Wallpaper = name
	return s.saveLocked()
}
