package value

// Map is an insertion-ordered associative container. Keys are arbitrary
// Values (commonly Text). While every key is Text, an internal index gives
// Get an O(1) lookup by string key; once a non-Text key is appended, the
// index is dropped and Get reports every key as absent.
type Map struct {
	entries []MapEntry
	// textIndex accelerates lookup/iteration when every key so far is
	// Text; it is invalidated (set to nil) the first time a non-Text key
	// is appended.
	textIndex map[string]int
}

// MapEntry is one key/value pair of a Map, in insertion order.
type MapEntry struct {
	Key Value
	Val Value
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{textIndex: make(map[string]int)}
}

// NewTextMap creates a Map pre-populated from a map[string]Value. Go maps
// have no deterministic iteration order, so callers that need reproducible
// encoding should follow with a deterministic-maps Config rather than
// relying on the order NewTextMap happens to enumerate keys in.
func NewTextMap(m map[string]Value) *Map {
	out := NewMap()
	for k, v := range m {
		out.Append(Text(k), v)
	}

	return out
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.entries)
}

// Entries returns the entries in insertion order. Callers must not mutate
// the returned slice.
func (m *Map) Entries() []MapEntry {
	return m.entries
}

// Append adds a key/value pair, preserving insertion order.
func (m *Map) Append(key, val Value) {
	if m.textIndex != nil && key.Kind == KindText {
		m.textIndex[key.textVal] = len(m.entries)
	} else {
		m.textIndex = nil
	}
	m.entries = append(m.entries, MapEntry{Key: key, Val: val})
}

// AllKeysText reports whether every key in the map is Text, the condition
// under which the encoder's deterministic-map sorting applies.
func (m *Map) AllKeysText() bool {
	if m.textIndex != nil {
		return true
	}
	for _, e := range m.entries {
		if e.Key.Kind != KindText {
			return false
		}
	}

	return true
}

// Get looks up a Text key. Returns ok=false if the map has any non-Text
// key or the key is absent.
func (m *Map) Get(key string) (Value, bool) {
	if m.textIndex == nil {
		return Value{}, false
	}
	idx, ok := m.textIndex[key]
	if !ok {
		return Value{}, false
	}

	return m.entries[idx].Val, true
}

// ToGoMap converts an all-Text-keyed Map into a map[string]Value. Returns
// ok=false if any key is not Text.
func (m *Map) ToGoMap() (map[string]Value, bool) {
	out := make(map[string]Value, len(m.entries))
	for _, e := range m.entries {
		if e.Key.Kind != KindText {
			return nil, false
		}
		out[e.Key.textVal] = e.Val
	}

	return out, true
}
