package engine

// settingsMap is the resolved rule-settings mapping. It preserves
// key-encounter order: preset-derived keys come first, outer keys follow,
// and overwriting an existing key keeps its original position.
type settingsMap struct {
	order  []string
	values map[string]any
}

func newSettingsMap() *settingsMap {
	return &settingsMap{
		values: make(map[string]any),
	}
}

// set stores value under key, appending the key to the order only on
// first sight.
func (s *settingsMap) set(key string, value any) {
	if _, exists := s.values[key]; !exists {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

// get returns the value stored under key.
func (s *settingsMap) get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// keys returns the keys in encounter order.
func (s *settingsMap) keys() []string {
	return s.order
}

func (s *settingsMap) len() int {
	return len(s.order)
}
