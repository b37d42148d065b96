package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/alinuxperson/tuxvantage/pkg/paths"
	"github.com/alinuxperson/tuxvantage/pkg/profile"
)

// Store is the process-wide configuration state: the persisted document
// with its override layer, plus the discovered external profiles. It is
// constructed once at startup and passed by reference; it is guarded by
// a single reader/writer lock. The lock is not reentrant, so a write
// view must be downgraded or closed before calling anything that takes
// a read view.
type Store struct {
	mu         sync.RWMutex
	configFile string
	tuxvantage TuxVantage
	profiles   *profile.Set
}

// Load reads the persisted config and discovers external profiles. A
// missing or unparsable tuxvantage.json is fatal; a missing file is
// created with the defaults first. Profile discovery failures are
// collected and returned as non-fatal errors.
func Load(p paths.Paths) (*Store, []error, error) {
	s := &Store{configFile: p.ConfigFile()}

	if err := s.load(); err != nil {
		return nil, nil, err
	}

	var warnings []error
	s.profiles, warnings = profile.Discover(p.ProfilesDir())

	return s, warnings, nil
}

// Read acquires a shared view. The caller must Close it.
func (s *Store) Read() *View {
	s.mu.RLock()
	return &View{s: s}
}

// Write acquires an exclusive view. The caller must Downgrade or Close
// it before anything else touches the store.
func (s *Store) Write() *WriteView {
	s.mu.Lock()
	return &WriteView{s: s}
}

// View is a shared, read-only view of the store.
type View struct {
	s    *Store
	once sync.Once
}

// Close releases the shared lock.
func (v *View) Close() {
	v.once.Do(v.s.mu.RUnlock)
}

// TuxVantage returns the layered configuration for resolution.
func (v *View) TuxVantage() *TuxVantage {
	return &v.s.tuxvantage
}

// Profiles returns the discovered external profile set.
func (v *View) Profiles() *profile.Set {
	return v.s.profiles
}

// WriteView is an exclusive view of the store.
type WriteView struct {
	s    *Store
	once sync.Once
}

// Close releases the exclusive lock.
func (v *WriteView) Close() {
	v.once.Do(v.s.mu.Unlock)
}

// Downgrade releases the exclusive lock and reacquires a shared one.
// Writes made through this view stay visible; the gap between unlock
// and rlock is unobservable as long as only the main goroutine mutates
// the store.
func (v *WriteView) Downgrade() *View {
	v.Close()
	return v.s.Read()
}

// TuxVantage returns the layered configuration for mutation.
func (v *WriteView) TuxVantage() *TuxVantage {
	return &v.s.tuxvantage
}

// Profiles returns the discovered external profile set.
func (v *WriteView) Profiles() *profile.Set {
	return v.s.profiles
}

// Dump persists the current configuration (without overrides) back to
// tuxvantage.json.
func (v *WriteView) Dump() error {
	return v.s.save()
}

func (s *Store) load() error {
	fp, err := os.Open(s.configFile)
	if err != nil {
		if os.IsNotExist(err) {
			// First run: persist the defaults so the user has a file to
			// edit.
			s.tuxvantage = TuxVantage{}
			return s.save()
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", s.configFile)
	}
	defer func(fp *os.File) {
		if err := fp.Close(); err != nil {
			logrus.Warnf("failed to close file %s", s.configFile)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", s.configFile)
	}

	if strings.TrimSpace(string(b)) == "" {
		s.tuxvantage = TuxVantage{}
		return nil
	}

	var conf TuxVantage
	if err := json.Unmarshal(b, &conf); err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", s.configFile)
	}
	s.tuxvantage = conf

	return nil
}

func (s *Store) save() error {
	fp, err := os.OpenFile(s.configFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", s.configFile)
	}
	defer func(fp *os.File) {
		if err := fp.Close(); err != nil {
			logrus.Warnf("failed to close file %s", s.configFile)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&s.tuxvantage); err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", s.configFile)
	}

	return nil
}
