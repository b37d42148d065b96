package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// External is a profile loaded from a JSON file, addressable by its
// path.
type External struct {
	Profile Profile
	Path    string
}

// Entry is a profile of either provenance. Built-in entries have no
// path.
type Entry struct {
	profile *Profile
	path    string
}

// Get returns the profile data.
func (e Entry) Get() *Profile {
	return e.profile
}

// Path returns the source file of an external profile; ok is false for
// built-ins.
func (e Entry) Path() (string, bool) {
	return e.path, e.path != ""
}

// BuiltIn reports whether the entry is compiled into the binary.
func (e Entry) BuiltIn() bool {
	return e.path == ""
}

// Set is the discovered external profiles. Search operations always
// consider built-ins first.
type Set struct {
	Externals []External
}

// Discover loads every JSON document in dir, sorted by file name so the
// search order is deterministic. A file that fails to load or parse is
// recorded as a non-fatal error and skipped.
func Discover(dir string) (*Set, []error) {
	var errs []error

	entries, err := os.ReadDir(dir)
	if err != nil {
		return &Set{}, []error{pkgerrors.Wrap(err, "failed to get entries of the profile directory")}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	set := &Set{}
	for _, name := range names {
		path := filepath.Join(dir, name)

		contents, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, pkgerrors.Wrapf(err, "failed to read contents of profile %s", path))
			continue
		}

		var p Profile
		if err := json.Unmarshal(contents, &p); err != nil {
			errs = append(errs, pkgerrors.Wrapf(err, "failed to deserialize contents of profile %s", path))
			continue
		}

		set.Externals = append(set.Externals, External{Profile: p, Path: path})
	}

	return set, errs
}

// WithBuiltIns returns the full search path: built-ins in declared
// order, then externals in discovery order.
func (s *Set) WithBuiltIns() []Entry {
	entries := make([]Entry, 0, len(builtIns)+len(s.Externals))
	for i := range builtIns {
		entries = append(entries, Entry{profile: &builtIns[i]})
	}
	for i := range s.Externals {
		entries = append(entries, Entry{
			profile: &s.Externals[i].Profile,
			path:    s.Externals[i].Path,
		})
	}

	return entries
}

// Find returns the first profile in search order with an exact name
// match.
func (s *Set) Find(name string) (Entry, bool) {
	for _, entry := range s.WithBuiltIns() {
		if entry.Get().Name == name {
			return entry, true
		}
	}
	return Entry{}, false
}

// Detect returns the first profile in search order whose expected
// product names contain product. Later candidates are not evaluated.
func (s *Set) Detect(product string) (Entry, bool) {
	for _, entry := range s.WithBuiltIns() {
		for _, expected := range entry.Get().ExpectedProductNames {
			if expected == product {
				return entry, true
			}
		}
	}
	return Entry{}, false
}
