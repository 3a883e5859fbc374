package gateway

import (
	"fmt"
	"time"
)

type DecodeError struct {
	Index int
	Want  string
	Got   any
	msg   string
}

func (e *DecodeError) Error() string {
	if e.msg != "" {
		return "decode row: " + e.msg
	}
	return fmt.Sprintf("decode row: column %d: cannot decode %T into %s", e.Index, e.Got, e.Want)
}

// Scan assigns row values to dest by position. Supported destinations are
// *string, **string, *int64, *int, *bool and *time.Time. A NULL is only
// accepted by **string.
func Scan(row Row, dest ...any) error {
	if len(row) != len(dest) {
		return &DecodeError{msg: fmt.Sprintf("expected %d columns, got %d", len(dest), len(row))}
	}

	for i, d := range dest {
		if err := assign(i, row[i], d); err != nil {
			return err
		}
	}
	return nil
}

func assign(i int, v any, dest any) error {
	switch d := dest.(type) {
	case *string:
		s, ok := v.(string)
		if !ok {
			return &DecodeError{Index: i, Want: "string", Got: v}
		}
		*d = s
	case **string:
		if v == nil {
			*d = nil
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return &DecodeError{Index: i, Want: "nullable string", Got: v}
		}
		*d = &s
	case *int64:
		n, ok := toInt64(v)
		if !ok {
			return &DecodeError{Index: i, Want: "int64", Got: v}
		}
		*d = n
	case *int:
		n, ok := toInt64(v)
		if !ok {
			return &DecodeError{Index: i, Want: "int", Got: v}
		}
		*d = int(n)
	case *bool:
		b, ok := v.(bool)
		if !ok {
			return &DecodeError{Index: i, Want: "bool", Got: v}
		}
		*d = b
	case *time.Time:
		ts, ok := v.(time.Time)
		if !ok {
			return &DecodeError{Index: i, Want: "time", Got: v}
		}
		*d = ts
	default:
		return &DecodeError{Index: i, Want: fmt.Sprintf("%T", dest), Got: v, msg: fmt.Sprintf("column %d: unsupported destination %T", i, dest)}
	}
	return nil
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}
