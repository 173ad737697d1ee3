// Package export projects records onto user-selected columns for spreadsheet downloads.
package export

import (
	"reflect"
	"strings"
	"time"
)

// Resolver produces the value of one column for a record
type Resolver[T any] func(rec T) any

// Attr resolves a dotted attribute path such as "Worker.FirstName".
// Nil pointers and unknown fields along the path resolve to "".
func Attr[T any](path string) Resolver[T] {
	parts := strings.Split(path, ".")
	return func(rec T) any {
		return lookup(reflect.ValueOf(rec), parts)
	}
}

// Func wraps a derivation function
func Func[T any](fn func(rec T) any) Resolver[T] {
	return Resolver[T](fn)
}

// Registry maps human-readable labels to resolvers for one record type
type Registry[T any] struct {
	labels    []string
	resolvers map[string]Resolver[T]
}

// NewRegistry creates an empty registry
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{resolvers: make(map[string]Resolver[T])}
}

// Add registers a label. Re-registering a label replaces its resolver.
func (r *Registry[T]) Add(label string, resolver Resolver[T]) *Registry[T] {
	if _, exists := r.resolvers[label]; !exists {
		r.labels = append(r.labels, label)
	}
	r.resolvers[label] = resolver
	return r
}

// Labels returns the registered labels in registration order
func (r *Registry[T]) Labels() []string {
	out := make([]string, len(r.labels))
	copy(out, r.labels)
	return out
}

// Has reports whether a label is registered
func (r *Registry[T]) Has(label string) bool {
	_, ok := r.resolvers[label]
	return ok
}

// Row resolves labels against a record, in label order. Unknown labels and
// failing resolvers yield "" instead of failing the export.
func (r *Registry[T]) Row(labels []string, rec T) []any {
	row := make([]any, len(labels))
	for i, label := range labels {
		resolver, ok := r.resolvers[label]
		if !ok {
			row[i] = ""
			continue
		}
		row[i] = normalize(safeResolve(resolver, rec))
	}
	return row
}

// Rows resolves every record
func (r *Registry[T]) Rows(labels []string, recs []T) [][]any {
	rows := make([][]any, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, r.Row(labels, rec))
	}
	return rows
}

func safeResolve[T any](resolver Resolver[T], rec T) (v any) {
	defer func() {
		if recover() != nil {
			v = ""
		}
	}()
	return resolver(rec)
}

func lookup(v reflect.Value, path []string) any {
	for _, name := range path {
		v = indirect(v)
		if !v.IsValid() || v.Kind() != reflect.Struct {
			return ""
		}
		v = v.FieldByName(name)
		if !v.IsValid() {
			return ""
		}
	}
	v = indirect(v)
	if !v.IsValid() || !v.CanInterface() {
		return ""
	}
	return v.Interface()
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// normalize turns values into something a spreadsheet cell can hold
func normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02")
	case *time.Time:
		if val == nil || val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02")
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case *int:
		if val == nil {
			return ""
		}
		return *val
	case *uint:
		if val == nil {
			return ""
		}
		return *val
	case *float64:
		if val == nil {
			return ""
		}
		return *val
	}
	return v
}
