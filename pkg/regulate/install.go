package regulate

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	sddbus "github.com/coreos/go-systemd/v22/dbus"
	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/alinuxperson/tuxvantage/pkg/consistency"
)

var unitPath = "/etc/systemd/system/bcm.service"

const unitTemplate = `[Unit]
Description=Battery conservation mode regulator

[Service]
ExecStart=/path/to/tuxvantage conservation regulate
Restart=on-failure

[Install]
WantedBy=multi-user.target
`

// IsSystemd reports whether systemd is the running init system.
func IsSystemd() (bool, error) {
	_, err := os.Stat("/run/systemd/system")
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, pkgerrors.Wrap(err, "failed to check if the current init system is systemd")
	}

	return true, nil
}

// Install writes the regulator service unit with the current executable
// path, marks the consistency ledger, and reloads the systemd daemon.
// It performs no regulation itself.
func Install(ctx context.Context, consistencyPath string) error {
	isSystemd, err := IsSystemd()
	if err != nil {
		return err
	}
	if !isSystemd {
		return pkgerrors.New("you can only install this service on systems which use the systemd init system")
	}

	exePath, err := os.Executable()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to get current path to executable")
	}
	exePath, err = filepath.Abs(exePath)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to get the absolute path to the current executable")
	}

	logrus.Infof("installing battery conservation regulator service to %s", color.New(color.Bold).Sprint(unitPath))
	logrus.Debugf("current executable path: %s", exePath)

	contents := strings.ReplaceAll(unitTemplate, "/path/to/tuxvantage", exePath)
	if err := os.WriteFile(unitPath, []byte(contents), 0644); err != nil {
		return pkgerrors.Wrapf(err, "failed to write %s", unitPath)
	}

	// The ledger must not be observable half-written; Mutate dumps
	// atomically.
	err = consistency.Mutate(consistencyPath, func(l *consistency.Ledger) {
		l.RegulatorServiceInstalled = true
		l.LastExecutable = &exePath
	})
	if err != nil {
		return pkgerrors.Wrap(err, "failed to dump consistency configuration")
	}

	logrus.Info("reloading the systemd daemon")
	conn, err := sddbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to connect to the systemd daemon")
	}
	defer conn.Close()

	if err := conn.ReloadContext(ctx); err != nil {
		return pkgerrors.Wrap(err, "failed to reload the systemd daemon")
	}

	return nil
}
