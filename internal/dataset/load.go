// Package dataset supplies the collections and the file tree the dashboard
// screens query: built-in mock data, YAML seed files that replace it, and a
// Store that swaps reloaded snapshots in safely.
package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"admindash/internal/errors"
	"admindash/internal/navigator"
	"admindash/internal/query"
)

// SourceBuiltin marks a collection that came from the built-in mock data
const SourceBuiltin = "builtin"

// Snapshot is one consistent set of collections plus the file tree
type Snapshot struct {
	Records  map[string][]query.Record
	Tree     *navigator.Tree
	Sources  map[string]string
	LoadedAt time.Time
}

type recordsFile struct {
	Records []map[string]interface{} `yaml:"records"`
}

type nodesFile struct {
	Nodes []navigator.Node `yaml:"nodes"`
}

// SeedFile is the seed file path for screen inside dir
func SeedFile(dir, screen string) string {
	return filepath.Join(dir, screen+".yaml")
}

// SeedFiles lists every seed file path LoadDir looks at
func SeedFiles(dir string) []string {
	return []string{
		SeedFile(dir, ScreenActivity),
		SeedFile(dir, ScreenAudit),
		SeedFile(dir, ScreenContacts),
		SeedFile(dir, ScreenFiles),
	}
}

// LoadRecords reads a `records:` seed file. Records without an id get a
// random UUID.
func LoadRecords(path string) ([]query.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewDatasetError("read seed file", path, err)
	}
	var f recordsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.NewDatasetError("parse seed file", path, err)
	}
	records := make([]query.Record, 0, len(f.Records))
	for _, raw := range f.Records {
		r := query.Record(raw)
		if r.ID() == "" {
			r[query.IDField] = uuid.NewString()
		}
		records = append(records, r)
	}
	return records, nil
}

// LoadNodes reads a `nodes:` seed file and derives every path from the parent
// chain. Nodes without an id get a random UUID.
func LoadNodes(path string) ([]navigator.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewDatasetError("read seed file", path, err)
	}
	var f nodesFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.NewDatasetError("parse seed file", path, err)
	}
	for i := range f.Nodes {
		if f.Nodes[i].ID == "" {
			f.Nodes[i].ID = uuid.NewString()
		}
	}
	nodes, err := navigator.DerivePaths(f.Nodes)
	if err != nil {
		return nil, errors.NewDatasetError("derive paths", path, err)
	}
	return nodes, nil
}

// Builtin assembles a snapshot from the mock data
func Builtin() (Snapshot, error) {
	return LoadDir("")
}

// LoadDir assembles a snapshot from the seed files in dir, falling back to the
// mock data for any file that does not exist. An empty dir means mock data
// only.
func LoadDir(dir string) (Snapshot, error) {
	snap := Snapshot{
		Records:  make(map[string][]query.Record, 3),
		Sources:  make(map[string]string, 4),
		LoadedAt: time.Now(),
	}

	builtin := map[string]func() []query.Record{
		ScreenActivity: ActivityLogs,
		ScreenAudit:    AuditLogs,
		ScreenContacts: Contacts,
	}
	for _, s := range Screens() {
		records, source, err := loadOrBuiltin(dir, s.Name, LoadRecords, builtin[s.Name])
		if err != nil {
			return Snapshot{}, err
		}
		if s.Name == ScreenContacts {
			records = AnnotateContacts(records)
		}
		snap.Records[s.Name] = records
		snap.Sources[s.Name] = source
	}

	nodes, source, err := loadOrBuiltin(dir, ScreenFiles, LoadNodes, func() []navigator.Node {
		derived, _ := navigator.DerivePaths(FileNodes())
		return derived
	})
	if err != nil {
		return Snapshot{}, err
	}
	tree, err := navigator.NewTree(nodes)
	if err != nil {
		return Snapshot{}, errors.NewDatasetError("build file tree", source, err)
	}
	snap.Tree = tree
	snap.Sources[ScreenFiles] = source
	return snap, nil
}

func loadOrBuiltin[T any](dir, screen string, load func(string) ([]T, error), fallback func() []T) ([]T, string, error) {
	if dir == "" {
		return fallback(), SourceBuiltin, nil
	}
	path := SeedFile(dir, screen)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fallback(), SourceBuiltin, nil
	}
	items, err := load(path)
	if err != nil {
		return nil, "", err
	}
	return items, path, nil
}

// Clone returns a copy whose collections can be modified without affecting s.
// The tree is immutable and shared.
func (s Snapshot) Clone() Snapshot {
	dup := Snapshot{
		Records:  make(map[string][]query.Record, len(s.Records)),
		Sources:  make(map[string]string, len(s.Sources)),
		Tree:     s.Tree,
		LoadedAt: s.LoadedAt,
	}
	for name, records := range s.Records {
		rs := make([]query.Record, len(records))
		for i, r := range records {
			rs[i] = r.Clone()
		}
		dup.Records[name] = rs
	}
	for k, v := range s.Sources {
		dup.Sources[k] = v
	}
	return dup
}
