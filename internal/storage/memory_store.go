package storage

// MemoryStore is a Provider without persistence, used by tests and dry runs.
type MemoryStore struct {
	items map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init() error {
	if s.items == nil {
		s.items = make(map[string]string)
	}
	return nil
}

func (s *MemoryStore) Load() error {
	return s.Init()
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) GetItem(key string) (string, bool, error) {
	if s.items == nil {
		return "", false, ErrNotLoaded
	}
	value, ok := s.items[key]
	return value, ok, nil
}

func (s *MemoryStore) SetItem(key, value string) error {
	if s.items == nil {
		return ErrNotLoaded
	}
	s.items[key] = value
	return nil
}

func (s *MemoryStore) RemoveItem(key string) error {
	if s.items == nil {
		return ErrNotLoaded
	}
	delete(s.items, key)
	return nil
}

func (s *MemoryStore) GetConfigPath() string { return ":memory:" }
