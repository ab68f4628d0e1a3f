package dbentity

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/cast"
)

// Accessor is the getter/setter pair an attribute resolves to. Plain fields get
// one from Ref; attributes that live elsewhere (a delegated identity) declare
// their own.
type Accessor struct {
	Get func() any
	Set func(value any) error
	// Equal reports whether value, once converted the way Set would, equals the
	// current value. Optional; without it values are compared as given.
	Equal func(value any) bool
}

func (a Accessor) valid() bool {
	return a.Get != nil && a.Set != nil
}

func (a Accessor) equals(value any) bool {
	if a.Equal != nil {
		return a.Equal(value)
	}
	return valuesEqual(a.Get(), value)
}

// Ref binds an attribute to the struct field p points at.
//
// Set accepts a value of the field's own type, or a raw storage value: fields
// implementing sql.Scanner scan it, basic scalar fields convert it.
func Ref[T any](p *T) Accessor {
	return Accessor{
		Get:   func() any { return *p },
		Set:   func(value any) error { return assign(p, value) },
		Equal: func(value any) bool { return equalAfterAssign(p, value) },
	}
}

// equalAfterAssign converts value into a scratch T with the rules of assign
// and compares the result with *p.
func equalAfterAssign[T any](p *T, value any) bool {
	var converted T
	if err := assign(&converted, value); err != nil {
		return false
	}
	return valuesEqual(*p, converted)
}

func assign[T any](p *T, value any) error {
	if v, ok := value.(T); ok {
		*p = v
		return nil
	}
	if s, ok := any(p).(sql.Scanner); ok {
		return s.Scan(value)
	}

	src := value
	if b, ok := src.([]byte); ok {
		src = string(b)
	}
	var (
		out any
		err error
	)
	switch any(p).(type) {
	case *int64:
		out, err = cast.ToInt64E(src)
	case *int:
		out, err = cast.ToIntE(src)
	case *int32:
		out, err = cast.ToInt32E(src)
	case *uint64:
		out, err = cast.ToUint64E(src)
	case *float64:
		out, err = cast.ToFloat64E(src)
	case *bool:
		out, err = cast.ToBoolE(src)
	case *string:
		out, err = cast.ToStringE(src)
	case *time.Time:
		out, err = cast.ToTimeE(src)
	default:
		return fmt.Errorf("cannot assign %T to %T", value, *p)
	}
	if err != nil {
		return fmt.Errorf("cannot assign %T to %T: %w", value, *p, err)
	}
	*p = out.(T)
	return nil
}

// bindValue turns an attribute value into what the driver receives.
func bindValue(v any) any {
	if valuer, ok := v.(driver.Valuer); ok {
		dv, err := valuer.Value()
		if err != nil {
			return v
		}
		return dv
	}
	return v
}

// isUnset reports whether an identity value counts as absent: nil, an invalid
// sql.Null*, or the zero value of a scalar.
func isUnset(v any) bool {
	v = bindValue(v)
	switch x := v.(type) {
	case nil:
		return true
	case int64:
		return x == 0
	case int:
		return x == 0
	case int32:
		return x == 0
	case uint64:
		return x == 0
	case float64:
		return x == 0
	case string:
		return x == ""
	case []byte:
		return len(x) == 0
	case bool:
		return !x
	}
	return false
}

// valuesEqual compares two attribute values, treating values that bind to the
// same driver value (two invalid sql.Null* for instance) as equal.
func valuesEqual(a, b any) bool {
	return reflect.DeepEqual(a, b) || reflect.DeepEqual(bindValue(a), bindValue(b))
}
