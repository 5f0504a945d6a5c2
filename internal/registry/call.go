package registry

// Typed accessors over the untyped config/input maps. Handlers run after
// upstream coercion, so these only smooth over JSON decoding artifacts
// (float64 numbers) rather than validating.

func (c Call) ConfigString(key string) string { return str(c.Config, key) }
func (c Call) InputString(key string) string  { return str(c.Input, key) }

func (c Call) ConfigBool(key string) bool { return boolean(c.Config, key) }
func (c Call) InputBool(key string) bool  { return boolean(c.Input, key) }

func (c Call) ConfigInt(key string) int { return integer(c.Config, key) }
func (c Call) InputInt(key string) int  { return integer(c.Input, key) }

// InputMap returns a nested object from the input, or nil.
func (c Call) InputMap(key string) map[string]any {
	m, _ := c.Input[key].(map[string]any)
	return m
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolean(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

func integer(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}
