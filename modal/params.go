package modal

// Params is the key-value bag supplied when opening a modal. Lookups never
// fail: an absent key yields the caller-supplied default, so UI code racing
// against a close stays safe.
type Params map[string]any

// Get returns the raw value for key and whether it was present.
func (p Params) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p[key]
	return v, ok
}

// String returns the string value for key, or def when absent or not a string.
func (p Params) String(key, def string) string {
	return As(p, key, def)
}

// Int returns the int value for key, or def when absent or not an int.
func (p Params) Int(key string, def int) int {
	return As(p, key, def)
}

// Bool returns the bool value for key, or def when absent or not a bool.
func (p Params) Bool(key string, def bool) bool {
	return As(p, key, def)
}

// Float returns the float64 value for key, or def when absent or not a float64.
func (p Params) Float(key string, def float64) float64 {
	return As(p, key, def)
}

// As returns the value for key typed as T, or def when the key is absent or
// holds a value of a different type.
func As[T any](p Params, key string, def T) T {
	v, ok := p.Get(key)
	if !ok {
		return def
	}
	typed, ok := v.(T)
	if !ok {
		return def
	}
	return typed
}
