package plotscript

import (
	"fmt"
	"io"
	"sort"
)

type bindingKind int

const (
	ExpressionBinding bindingKind = iota
	ProcedureBinding
)

type binding struct {
	kind bindingKind
	exp  Expression
	proc Procedure
}

// Scopes map names to bindings. A closure call gets a fresh child
// scope whose Parent is the calling scope, so creating one is O(1)
// and lookups walk outward toward the global scope.
type Scope struct {
	Map      map[string]binding
	IsGlobal bool
	Name     string
	Parent   *Scope
}

func NewScope(name string, parent *Scope) *Scope {
	return &Scope{
		Map:    make(map[string]binding),
		Name:   name,
		Parent: parent,
	}
}

func NewGlobalScope() *Scope {
	s := NewScope("global", nil)
	s.IsGlobal = true
	return s
}

// Lookup finds name in this scope or the nearest enclosing one.
func (s *Scope) Lookup(name string) (b binding, where *Scope, found bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if b, ok := sc.Map[name]; ok {
			return b, sc, true
		}
	}
	return binding{}, nil, false
}

func (s *Scope) Bind(name string, b binding) {
	s.Map[name] = b
}

func (s *Scope) Erase(name string) {
	delete(s.Map, name)
}

func (s *Scope) Depth() int {
	d := 0
	for sc := s.Parent; sc != nil; sc = sc.Parent {
		d++
	}
	return d
}

// Names returns every name visible from s, sorted.
func (s *Scope) Names() []string {
	seen := make(map[string]bool)
	for sc := s; sc != nil; sc = sc.Parent {
		for k := range sc.Map {
			seen[k] = true
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Show writes the bindings of s, innermost scope first.
func (s *Scope) Show(w io.Writer) {
	for sc := s; sc != nil; sc = sc.Parent {
		label := "scope " + sc.Name
		if sc.IsGlobal {
			label += " (global)"
		}
		fmt.Fprintf(w, "%s\n", label)
		keys := make([]string, 0, len(sc.Map))
		for k := range sc.Map {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b := sc.Map[k]
			if b.kind == ProcedureBinding {
				fmt.Fprintf(w, "   %s -> <built-in>\n", k)
			} else {
				fmt.Fprintf(w, "   %s -> %s\n", k, b.exp.String())
			}
		}
	}
}
