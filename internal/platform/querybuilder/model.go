package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// modelShape is the db-tagged layout of a struct type.
type modelShape struct {
	columns []string
	fields  []int
}

var shapes sync.Map // reflect.Type -> *modelShape

func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value, shape, err := inspect(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(shape.columns...).
		Values(shape.values(value)...).
		Suffix(suffix).
		ToSQL()
}

// InsertModels builds one multi-row insert from models of the same type.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, fmt.Errorf("insert models are required")
	}

	builder := InsertInto(table).Suffix(suffix)
	for i, model := range models {
		value, shape, err := inspect(model)
		if err != nil {
			return "", nil, fmt.Errorf("model %d: %w", i, err)
		}
		if i == 0 {
			builder.Columns(shape.columns...)
		}
		builder.Values(shape.values(value)...)
	}
	return builder.ToSQL()
}

func inspect(model any) (reflect.Value, *modelShape, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return reflect.Value{}, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	shape, err := shapeOf(value.Type())
	if err != nil {
		return reflect.Value{}, nil, err
	}
	return value, shape, nil
}

func shapeOf(typ reflect.Type) (*modelShape, error) {
	if cached, ok := shapes.Load(typ); ok {
		return cached.(*modelShape), nil
	}

	shape := &modelShape{}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		shape.columns = append(shape.columns, name)
		shape.fields = append(shape.fields, i)
	}
	if len(shape.columns) == 0 {
		return nil, fmt.Errorf("model %s has no db columns", typ)
	}

	actual, _ := shapes.LoadOrStore(typ, shape)
	return actual.(*modelShape), nil
}

func (s *modelShape) values(value reflect.Value) []any {
	out := make([]any, len(s.fields))
	for i, idx := range s.fields {
		out[i] = value.Field(idx).Interface()
	}
	return out
}
