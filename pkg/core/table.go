package core

// TableKind names one of the document's reference tables.
type TableKind string

// Reference table kinds.
const (
	TableColors       TableKind = "colors"
	TableFontSizes    TableKind = "fontSizes"
	TableFontFamilies TableKind = "fontFamilies"
	TableFontWeights  TableKind = "fontWeights"
	TableLineHeights  TableKind = "lineHeights"
	TableBreakpoints  TableKind = "breakpoints"
)

// Entry is implemented by every reference table value.
type Entry interface {
	EntryID() string
}

// Table is an ordered, read-only ID → value store.
// Insertion order is kept so that First is well defined.
type Table[T Entry] struct {
	kind    TableKind
	entries []T
	byID    map[string]int
}

// NewTable builds a table from entries, rejecting duplicate IDs.
func NewTable[T Entry](kind TableKind, entries []T) (*Table[T], error) {
	t := &Table[T]{
		kind:    kind,
		entries: make([]T, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		id := e.EntryID()
		if _, exists := t.byID[id]; exists {
			return nil, &DuplicateIDError{Scope: string(kind), ID: id}
		}
		t.byID[id] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// Kind returns the table kind.
func (t *Table[T]) Kind() TableKind {
	return t.kind
}

// Lookup returns the entry with the given ID.
// A missing ID is always an error; there is no silent default.
func (t *Table[T]) Lookup(id string) (T, error) {
	var zero T
	if t == nil {
		return zero, &RefNotFoundError{ID: id}
	}
	i, ok := t.byID[id]
	if !ok {
		return zero, &RefNotFoundError{Table: t.kind, ID: id}
	}
	return t.entries[i], nil
}

// First returns the first entry in insertion order, used for absent-value fallback.
func (t *Table[T]) First() (T, bool) {
	var zero T
	if t == nil || len(t.entries) == 0 {
		return zero, false
	}
	return t.entries[0], true
}

// Len returns the number of entries.
func (t *Table[T]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// All returns a copy of the entries in insertion order.
func (t *Table[T]) All() []T {
	if t == nil {
		return nil
	}
	out := make([]T, len(t.entries))
	copy(out, t.entries)
	return out
}

// ColorToken is a named color value, e.g. "#000000".
type ColorToken struct {
	ID    string
	Name  string
	Value string
}

// EntryID implements Entry.
func (c ColorToken) EntryID() string { return c.ID }

// FontSizeToken is a named font size.
type FontSizeToken struct {
	ID    string
	Name  string
	Value Length
}

// EntryID implements Entry.
func (f FontSizeToken) EntryID() string { return f.ID }

// FontFamilyToken is a CSS font-family value.
type FontFamilyToken struct {
	ID    string
	Name  string
	Value string
}

// EntryID implements Entry.
func (f FontFamilyToken) EntryID() string { return f.ID }

// FontWeightToken is a CSS font-weight value, e.g. "700".
type FontWeightToken struct {
	ID    string
	Name  string
	Value string
}

// EntryID implements Entry.
func (f FontWeightToken) EntryID() string { return f.ID }

// LineHeightToken is a CSS line-height value, e.g. "1.5".
type LineHeightToken struct {
	ID    string
	Name  string
	Value string
}

// EntryID implements Entry.
func (l LineHeightToken) EntryID() string { return l.ID }

// BreakpointToken is a viewport width at which media queries activate.
type BreakpointToken struct {
	ID    string
	Name  string
	Value Length
}

// EntryID implements Entry.
func (b BreakpointToken) EntryID() string { return b.ID }

// Refs is the read-only set of reference tables threaded through resolution.
type Refs struct {
	Colors       *Table[ColorToken]
	FontSizes    *Table[FontSizeToken]
	FontFamilies *Table[FontFamilyToken]
	FontWeights  *Table[FontWeightToken]
	LineHeights  *Table[LineHeightToken]
	Breakpoints  *Table[BreakpointToken]
}

// EmptyRefs returns a Refs value whose tables are all empty.
func EmptyRefs() *Refs {
	colors, _ := NewTable[ColorToken](TableColors, nil)
	sizes, _ := NewTable[FontSizeToken](TableFontSizes, nil)
	families, _ := NewTable[FontFamilyToken](TableFontFamilies, nil)
	weights, _ := NewTable[FontWeightToken](TableFontWeights, nil)
	lines, _ := NewTable[LineHeightToken](TableLineHeights, nil)
	bps, _ := NewTable[BreakpointToken](TableBreakpoints, nil)
	return &Refs{
		Colors:       colors,
		FontSizes:    sizes,
		FontFamilies: families,
		FontWeights:  weights,
		LineHeights:  lines,
		Breakpoints:  bps,
	}
}
