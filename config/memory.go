package config

// MemoryStore is an in-memory Store. Useful in tests and for hosts that
// persist filter state through their own mechanism.
type MemoryStore struct {
	sections map[string]map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sections: make(map[string]map[string]string)}
}

func (m *MemoryStore) GetValue(section, key, fallback string) string {
	if values, ok := m.sections[section]; ok {
		if v, ok := values[key]; ok {
			return v
		}
	}
	return fallback
}

func (m *MemoryStore) SetValue(section, key, value string) {
	values, ok := m.sections[section]
	if !ok {
		values = make(map[string]string)
		m.sections[section] = values
	}
	values[key] = value
}

func (m *MemoryStore) RemoveValue(section, key string) {
	if values, ok := m.sections[section]; ok {
		delete(values, key)
	}
}

func (m *MemoryStore) HasValue(section, key string) bool {
	values, ok := m.sections[section]
	if !ok {
		return false
	}
	_, ok = values[key]
	return ok
}

// Sections returns the number of non-empty sections, for diagnostics.
func (m *MemoryStore) Sections() int {
	n := 0
	for _, values := range m.sections {
		if len(values) > 0 {
			n++
		}
	}
	return n
}
