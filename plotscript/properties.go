package plotscript

import (
	"sort"
)

// Property keys renderers look for.
const (
	PropObjectName   = "object-name"
	PropSize         = "size"
	PropThickness    = "thickness"
	PropPosition     = "position"
	PropTextScale    = "text-scale"
	PropTextRotation = "text-rotation"
)

// GetProperty returns the value stored under key, or None.
func (e Expression) GetProperty(key string) Expression {
	if e.props == nil {
		return Expression{}
	}
	return e.props[key]
}

func (e Expression) HasProperty(key string) bool {
	_, ok := e.props[key]
	return ok
}

// SetProperty returns a copy of e with key bound to val. e itself,
// and any other value sharing its property list, is unchanged.
func (e Expression) SetProperty(key string, val Expression) Expression {
	props := make(map[string]Expression, len(e.props)+1)
	for k, v := range e.props {
		props[k] = v
	}
	props[key] = val
	e.props = props
	return e
}

// PropertyKeys lists the keys in sorted order.
func (e Expression) PropertyKeys() []string {
	keys := make([]string, 0, len(e.props))
	for k := range e.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ObjectName is the unquoted "object-name" property, or "" when unset.
func (e Expression) ObjectName() string {
	v := e.GetProperty(PropObjectName)
	if s, ok := v.Head().(AtomString); ok {
		return s.Unquoted()
	}
	return ""
}
