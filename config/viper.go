package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ViperStore adapts a viper instance to the Store contract. Section and key
// are joined into a dotted viper path, so a persisted settings file groups
// filter state under one block per filter.
//
// Viper cannot delete keys, so removals are tracked in a shadow set and
// honored by GetValue/HasValue; WriteFile skips removed keys.
type ViperStore struct {
	v       *viper.Viper
	removed map[string]bool
}

// NewViperStore wraps an existing viper instance. The caller keeps ownership
// of reading/writing the backing file.
func NewViperStore(v *viper.Viper) *ViperStore {
	return &ViperStore{
		v:       v,
		removed: make(map[string]bool),
	}
}

func (s *ViperStore) path(section, key string) string {
	// Viper lowercases keys internally; mirror that in the shadow set
	return strings.ToLower(fmt.Sprintf("%s.%s", section, key))
}

func (s *ViperStore) GetValue(section, key, fallback string) string {
	p := s.path(section, key)
	if s.removed[p] || !s.v.IsSet(p) {
		return fallback
	}
	return s.v.GetString(p)
}

func (s *ViperStore) SetValue(section, key, value string) {
	p := s.path(section, key)
	delete(s.removed, p)
	s.v.Set(p, value)
}

func (s *ViperStore) RemoveValue(section, key string) {
	s.removed[s.path(section, key)] = true
}

func (s *ViperStore) HasValue(section, key string) bool {
	p := s.path(section, key)
	return !s.removed[p] && s.v.IsSet(p)
}

// WriteFile persists the current settings to the file viper is configured
// for, materializing removals by writing remaining values into a fresh
// instance first.
func (s *ViperStore) WriteFile(path string) error {
	out := viper.New()
	for _, key := range s.v.AllKeys() {
		if s.removed[key] {
			continue
		}
		out.Set(key, s.v.Get(key))
	}
	if err := out.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
