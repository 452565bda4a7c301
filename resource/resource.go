// Package resource is the registry of action records.
//
// An action record binds a reference URI to the configuration an operation
// runs with. Records ship embedded in the binary and can be overridden by
// YAML files in a directory; an override only wins when its version is
// higher than the record it replaces.
package resource

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pithecene-io/catalogi/log"
	"github.com/pithecene-io/catalogi/types"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var (
	// ErrNotFound is returned when no record has the requested reference.
	ErrNotFound = errors.New("resource not found")
	// ErrPluginMismatch is returned when a record belongs to another plugin.
	ErrPluginMismatch = errors.New("resource belongs to another plugin")
)

// Record is a versioned action record.
type Record struct {
	Reference     string     `yaml:"reference" json:"reference"`
	Plugin        string     `yaml:"plugin" json:"plugin"`
	Version       string     `yaml:"version" json:"version"`
	Handler       string     `yaml:"handler" json:"handler"`
	Configuration types.Data `yaml:"configuration" json:"configuration"`
	// Source is the file the record was read from, or "embedded".
	Source string `yaml:"-" json:"source"`
}

type document struct {
	Actions []Record `yaml:"actions"`
}

// Store holds the active record set.
type Store struct {
	dir    string
	logger *log.Logger

	mu       sync.RWMutex
	records  map[string]Record
	onChange []func([]Record)
}

// Load builds a store from the embedded defaults and, when dir is not
// empty, the *.yaml and *.yml files in dir.
func Load(dir string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.Nop()
	}
	s := &Store{dir: dir, logger: logger}
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	s.records = records
	return s, nil
}

// Dir returns the override directory, or "" when there is none.
func (s *Store) Dir() string {
	return s.dir
}

// Resolve returns a copy of the configuration of the record with the given
// reference. The record must belong to plugin.
func (s *Store) Resolve(reference, plugin string) (types.Data, error) {
	rec, err := s.Get(reference)
	if err != nil {
		return nil, err
	}
	if rec.Plugin != plugin {
		return nil, fmt.Errorf("%w: %s is owned by %q, not %q", ErrPluginMismatch, reference, rec.Plugin, plugin)
	}
	if rec.Configuration == nil {
		return types.Data{}, nil
	}
	return rec.Configuration, nil
}

// Get returns the record with the given reference.
func (s *Store) Get(reference string) (Record, error) {
	s.mu.RLock()
	rec, ok := s.records[reference]
	s.mu.RUnlock()
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, reference)
	}
	rec.Configuration = types.Clone(rec.Configuration)
	return rec, nil
}

// Records returns all records sorted by reference.
func (s *Store) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedRecords(s.records)
}

// OnChange registers a callback invoked after every successful reload.
func (s *Store) OnChange(fn func([]Record)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = append(s.onChange, fn)
}

// Reload re-reads the override directory. On error the current record set
// is kept.
func (s *Store) Reload() error {
	records, err := s.load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records = records
	callbacks := make([]func([]Record), len(s.onChange))
	copy(callbacks, s.onChange)
	list := sortedRecords(records)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(list)
	}
	return nil
}

func (s *Store) load() (map[string]Record, error) {
	records := make(map[string]Record)
	if err := merge(records, defaultsYAML, "embedded"); err != nil {
		return nil, err
	}
	if s.dir == "" {
		return records, nil
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read resources %s: %w", s.dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read resource %s: %w", path, err)
		}
		if err := merge(records, data, path); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func merge(records map[string]Record, data []byte, source string) error {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse resource %s: %w", source, err)
	}
	for i, rec := range doc.Actions {
		if rec.Reference == "" {
			return fmt.Errorf("parse resource %s: action %d has no reference", source, i)
		}
		rec.Source = source
		if current, ok := records[rec.Reference]; ok && CompareVersions(rec.Version, current.Version) <= 0 {
			continue
		}
		records[rec.Reference] = rec
	}
	return nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func sortedRecords(records map[string]Record) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		rec.Configuration = types.Clone(rec.Configuration)
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	return out
}

// CompareVersions compares dotted integer versions, returning -1, 0 or 1.
// Missing components count as zero, as do components that are not numbers.
func CompareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := max(len(as), len(bs))
	for i := range n {
		x, y := versionPart(as, i), versionPart(bs, i)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}

func versionPart(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
	if err != nil {
		return 0
	}
	return n
}
