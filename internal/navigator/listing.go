package navigator

import (
	"admindash/internal/query"
)

// Listing is the content of one folder, folders and files kept apart
type Listing struct {
	Folders []Node
	Files   []Node
}

// All returns folders followed by files
func (l Listing) All() []Node {
	out := make([]Node, 0, len(l.Folders)+len(l.Files))
	out = append(out, l.Folders...)
	return append(out, l.Files...)
}

// IDs returns the ids of All in order
func (l Listing) IDs() []string {
	all := l.All()
	ids := make([]string, len(all))
	for i, n := range all {
		ids[i] = n.ID
	}
	return ids
}

// Len is the number of entries
func (l Listing) Len() int {
	return len(l.Folders) + len(l.Files)
}

// Listing sort fields and the name pattern filter key
const (
	SortName      = "name"
	SortModified  = "modified"
	SortSize      = "size"
	SortItemCount = "itemCount"
	FilterPattern = "pattern"
)

// ListingEngine orders and filters folder contents. Folders and files are
// queried separately so each half keeps its own order.
var ListingEngine = query.NewEngine(
	[]query.Field{
		{Name: SortName, Kind: query.Text, Searchable: true},
		{Name: SortModified, Kind: query.Timestamp},
		{Name: SortSize, Kind: query.Number},
		{Name: SortItemCount, Kind: query.Number},
		{Name: "kind", Kind: query.Enum},
	},
	query.Filter{Key: FilterPattern, Compile: query.Glob(SortName)},
)

// NodeRecord exposes a node to the query engine
func NodeRecord(n Node) query.Record {
	return query.Record{
		query.IDField: n.ID,
		SortName:      n.Name,
		SortModified:  n.Modified,
		SortSize:      n.Size,
		SortItemCount: n.ItemCount,
		"kind":        string(n.Kind),
	}
}

// Order runs q over both halves of l
func (l Listing) Order(q query.Query) (Listing, error) {
	folders, err := orderNodes(l.Folders, q)
	if err != nil {
		return Listing{}, err
	}
	files, err := orderNodes(l.Files, q)
	if err != nil {
		return Listing{}, err
	}
	return Listing{Folders: folders, Files: files}, nil
}

func orderNodes(nodes []Node, q query.Query) ([]Node, error) {
	records := make([]query.Record, len(nodes))
	byID := make(map[string]Node, len(nodes))
	for i, n := range nodes {
		records[i] = NodeRecord(n)
		byID[n.ID] = n
	}
	view, err := ListingEngine.Run(records, q)
	if err != nil {
		return nil, err
	}
	out := make([]Node, 0, len(view))
	for _, id := range view.IDs() {
		out = append(out, byID[id])
	}
	return out, nil
}
