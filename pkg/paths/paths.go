// Package paths resolves the project's configuration directories.
package paths

import (
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const application = "tuxvantage"

// Paths locates every file the program persists. Constructed once at
// startup and passed by value to whoever needs it.
type Paths struct {
	configDir string
}

// Resolve derives the config directory from the OS user config dir and
// creates it (plus the profiles subdirectory) if missing.
func Resolve() (Paths, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, pkgerrors.Wrap(err, "failed to get user config directory")
	}

	return At(filepath.Join(base, application))
}

// At points at an explicit config directory. Used by tests and the
// --config-dir flag.
func At(dir string) (Paths, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Paths{}, pkgerrors.Wrapf(err, "failed to create config directory %s", dir)
	}

	profiles := filepath.Join(dir, "profiles")
	if err := os.MkdirAll(profiles, 0755); err != nil {
		return Paths{}, pkgerrors.Wrapf(err, "failed to create profiles directory %s", profiles)
	}

	logrus.Debugf("config directory is %s", dir)

	return Paths{configDir: dir}, nil
}

// ConfigDir returns the config directory.
func (p Paths) ConfigDir() string {
	return p.configDir
}

// ProfilesDir returns the directory external profiles are loaded from.
func (p Paths) ProfilesDir() string {
	return filepath.Join(p.configDir, "profiles")
}

// ConfigFile returns the path of the persisted configuration document.
func (p Paths) ConfigFile() string {
	return filepath.Join(p.configDir, "tuxvantage.json")
}

// ConsistencyFile returns the path of the consistency ledger.
func (p Paths) ConsistencyFile() string {
	return filepath.Join(p.configDir, "consistency.json")
}
