// Package frame defines the tabular value model every node executor
// operates on: an ordered list of typed columns plus a sequence of
// dynamically-typed row records.
package frame

// Type is advisory metadata inferred from sampled values. It is never
// enforced at the cell level: a "number" column may hold non-numeric
// values after a bad transform, and executors must tolerate that.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
	TypeDate    Type = "date"
)

// Column describes one named, typed column of a DataFrame. Names are
// unique within a frame.
type Column struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

// Row maps column names to scalar cells. Cells are nil, string, float64,
// int, or bool. A key absent from the map is equivalent to a nil cell;
// executors must never rely on every row carrying the full key set.
type Row map[string]any

// DataFrame is an ordered column schema plus its rows. Frames are treated
// as immutable once produced: executors return fresh frames and never
// mutate or alias the one they were given.
type DataFrame struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// New returns an empty frame with the given schema.
func New(columns ...Column) *DataFrame {
	return &DataFrame{Columns: columns, Rows: []Row{}}
}

// Column returns the column with the given name, if present.
func (f *DataFrame) Column(name string) (Column, bool) {
	for _, c := range f.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Clone deep-copies the frame: the schema slice, the row slice, and every
// row map. Callers hand clones (never live references) to user code, which
// is what keeps sibling consumers of the same upstream frame isolated from
// sandbox mutation.
func (f *DataFrame) Clone() *DataFrame {
	if f == nil {
		return nil
	}
	out := &DataFrame{
		Columns: make([]Column, len(f.Columns)),
		Rows:    make([]Row, len(f.Rows)),
	}
	copy(out.Columns, f.Columns)
	for i, r := range f.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		out.Rows[i] = nr
	}
	return out
}

// InferType reports the advisory type for a single cell. Used for computed
// columns, where the output type follows the first non-null value.
func InferType(v any) Type {
	switch v.(type) {
	case float64, int, int64:
		return TypeNumber
	case bool:
		return TypeBoolean
	default:
		return TypeString
	}
}
