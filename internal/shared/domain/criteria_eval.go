package domain

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/davicafu/consentlab/internal/shared/platform/listview"
)

// FieldResolver devuelve el valor de un campo lógico ("status", "lodged_at"...)
// de un elemento. ok=false si el campo no existe para ese tipo.
type FieldResolver[T any] func(item T, field string) (value interface{}, ok bool)

// Predicate convierte criterios neutrales en un predicado en memoria.
// Es el equivalente al WHERE de los repositorios SQL para las vistas que
// filtran en cliente. Un campo desconocido nunca coincide.
func Predicate[T any](criteria Criteria, resolve FieldResolver[T]) listview.Predicate[T] {
	if criteria == nil {
		return nil
	}
	return compile(criteria, resolve)
}

func compile[T any](criteria Criteria, resolve FieldResolver[T]) listview.Predicate[T] {
	composite, ok := criteria.(CompositeCriteria)
	if !ok {
		conds := criteria.ToConditions()
		preds := make([]listview.Predicate[T], 0, len(conds))
		for _, cond := range conds {
			preds = append(preds, condition(cond, resolve))
		}
		return allOf(preds)
	}

	var children []listview.Predicate[T]
	for _, child := range composite.Criterias {
		if child != nil {
			children = append(children, compile(child, resolve))
		}
	}
	// OR sin hijos no filtra, igual que un AND vacío.
	if composite.Operator == OpOr {
		return listview.AnyOf(children...)
	}
	return allOf(children)
}

func condition[T any](cond Criterion, resolve FieldResolver[T]) listview.Predicate[T] {
	field := strings.ToLower(cond.Field)
	if Operator(strings.ToUpper(string(cond.Op))) == OpNeq {
		// El campo tiene que existir: un campo desconocido nunca coincide.
		known := func(item T) bool {
			_, ok := resolve(item, field)
			return ok
		}
		eq := condition(Criterion{Field: field, Op: OpEq, Value: cond.Value}, resolve)
		return allOf([]listview.Predicate[T]{known, listview.Not(eq)})
	}
	return func(item T) bool {
		value, ok := resolve(item, field)
		return ok && Match(value, cond.Op, cond.Value)
	}
}

func allOf[T any](preds []listview.Predicate[T]) listview.Predicate[T] {
	return func(item T) bool {
		for _, p := range preds {
			if !p(item) {
				return false
			}
		}
		return true
	}
}

// Match evalúa `value <op> operand` con la semántica de los adaptadores SQL.
func Match(value interface{}, op Operator, operand interface{}) bool {
	switch Operator(strings.ToUpper(string(op))) {
	case OpEq:
		return equalValues(value, operand)
	case OpNeq:
		return !equalValues(value, operand)
	case OpGt:
		c, ok := compareValues(value, operand)
		return ok && c > 0
	case OpGte:
		c, ok := compareValues(value, operand)
		return ok && c >= 0
	case OpLt:
		c, ok := compareValues(value, operand)
		return ok && c < 0
	case OpLte:
		c, ok := compareValues(value, operand)
		return ok && c <= 0
	case OpLike:
		return like(value, operand, false)
	case OpILike:
		return like(value, operand, true)
	case OpIn:
		return in(value, operand)
	default:
		return false
	}
}

// normalize lleva los valores a float64, string, bool o time.Time.
func normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case nil:
		return nil
	case time.Time:
		return x
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	}
	return v
}

func compareValues(a, b interface{}) (int, bool) {
	switch x := normalize(a).(type) {
	case float64:
		if y, ok := normalize(b).(float64); ok {
			return cmp.Compare(x, y), true
		}
	case string:
		if y, ok := normalize(b).(string); ok {
			return cmp.Compare(x, y), true
		}
	case time.Time:
		if y, ok := normalize(b).(time.Time); ok {
			return x.Compare(y), true
		}
	}
	return 0, false
}

func equalValues(a, b interface{}) bool {
	if c, ok := compareValues(a, b); ok {
		return c == 0
	}
	na, nb := normalize(a), normalize(b)
	if na == nil || nb == nil {
		return na == nil && nb == nil
	}
	return reflect.DeepEqual(na, nb)
}

// like soporta los patrones "%x%", "x%", "%x" y "x".
func like(value, pattern interface{}, fold bool) bool {
	s, ok := normalize(value).(string)
	if !ok {
		return false
	}
	p, ok := normalize(pattern).(string)
	if !ok {
		return false
	}
	if fold {
		s, p = strings.ToLower(s), strings.ToLower(p)
	}

	// Solo un comodín por extremo; el resto del patrón es literal.
	prefix := strings.HasPrefix(p, "%")
	needle := strings.TrimPrefix(p, "%")
	suffix := strings.HasSuffix(needle, "%")
	needle = strings.TrimSuffix(needle, "%")

	switch {
	case prefix && suffix:
		return strings.Contains(s, needle)
	case suffix:
		return strings.HasPrefix(s, needle)
	case prefix:
		return strings.HasSuffix(s, needle)
	default:
		return s == needle
	}
}

func in(value, set interface{}) bool {
	if _, scalar := set.(fmt.Stringer); scalar {
		return equalValues(value, set)
	}
	rv := reflect.ValueOf(set)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return equalValues(value, set)
	}
	for i := 0; i < rv.Len(); i++ {
		if equalValues(value, rv.Index(i).Interface()) {
			return true
		}
	}
	return false
}
