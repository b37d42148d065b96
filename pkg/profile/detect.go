package profile

import (
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const dmiProductNameFile = "/sys/class/dmi/id/product_name"

// ProductName reads the host's product identifier from DMI. Reading it
// may require elevated privileges on some systems; the caller decides
// whether that deserves a remediation tip.
func ProductName() (string, error) {
	contents, err := os.ReadFile(dmiProductNameFile)
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to read the product name of this machine")
	}

	name := strings.TrimSpace(string(contents))
	logrus.Debugf("product name is '%s'", name)

	return name, nil
}

// Resolve selects the active profile. An explicit name wins and must
// match exactly; otherwise the host product name is matched against
// each candidate's expected-product-name list in search order.
func (s *Set) Resolve(explicit string) (Entry, error) {
	if explicit != "" {
		entry, ok := s.Find(explicit)
		if !ok {
			return Entry{}, pkgerrors.Errorf("the profile '%s' does not exist", explicit)
		}
		return entry, nil
	}

	product, err := ProductName()
	if err != nil {
		return Entry{}, err
	}

	entry, ok := s.Detect(product)
	if !ok {
		return Entry{}, pkgerrors.Errorf("no profile matching product '%s' was found", product)
	}

	return entry, nil
}
