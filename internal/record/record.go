package record

// Field is one named value of a raw record.
type Field struct {
	Name  string
	Value Value
}

// Raw is an unvalidated record as delivered by a source adapter. Field order
// follows the source document, which is why this is a slice and not a map.
type Raw []Field

// Get returns the value of the named field.
func (r Raw) Get(name string) (Value, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Names returns the field names in source order.
func (r Raw) Names() []string {
	names := make([]string, 0, len(r))
	for _, f := range r {
		names = append(names, f.Name)
	}
	return names
}
