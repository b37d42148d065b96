// Package consistency keeps a small persisted record used to detect
// stale installed-service state when the executable moves.
package consistency

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Ledger is the persisted consistency record.
type Ledger struct {
	RegulatorServiceInstalled bool    `json:"regulatorServiceInstalled"`
	LastExecutable            *string `json:"lastExecutable,omitempty"`
}

// Load reads the ledger. A missing file is an empty ledger.
func Load(path string) (*Ledger, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Ledger{}, nil
		}
		return nil, pkgerrors.Wrapf(err, "failed to read consistency file %s", path)
	}

	var l Ledger
	if err := json.Unmarshal(b, &l); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal consistency file %s", path)
	}

	return &l, nil
}

// Dump writes the ledger atomically: a temp file in the same directory
// is renamed over the target, so a half-written state is never
// observed.
func (l *Ledger) Dump(path string) error {
	b, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal consistency record")
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".consistency-*")
	if err != nil {
		return pkgerrors.Wrap(err, "failed to create temporary consistency file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return pkgerrors.Wrap(err, "failed to write consistency record")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return pkgerrors.Wrap(err, "failed to flush consistency record")
	}
	if err := tmp.Close(); err != nil {
		return pkgerrors.Wrap(err, "failed to close temporary consistency file")
	}

	return pkgerrors.Wrapf(os.Rename(tmp.Name(), path), "failed to replace consistency file %s", path)
}

// Mutate applies f and dumps the result.
func Mutate(path string, f func(*Ledger)) error {
	l, err := Load(path)
	if err != nil {
		return err
	}

	f(l)

	return l.Dump(path)
}

// Check compares the current executable against the recorded installer
// path. Installed service plus a moved executable earns a warning; an
// empty record is filled in silently.
func Check(path, currentExe string) error {
	l, err := Load(path)
	if err != nil {
		return err
	}

	if l.LastExecutable == nil {
		logrus.Debugf("no last executable recorded, setting it to %s", currentExe)
		l.LastExecutable = &currentExe
		return l.Dump(path)
	}

	if l.RegulatorServiceInstalled && *l.LastExecutable != currentExe {
		logrus.Warnf(
			"the executable that installed the battery regulator service (%s) differs from the one running now (%s); "+
				"the service may fail with a no such file or directory error. If so, run %s again.",
			color.New(color.Bold).Sprint(*l.LastExecutable),
			color.New(color.Bold).Sprint(currentExe),
			color.New(color.Bold).Sprint("tuxvantage conservation regulate -I"),
		)
	}

	return nil
}
