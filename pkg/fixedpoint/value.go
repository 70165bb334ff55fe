package fixedpoint

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

const DefaultPrecision = 8

const DefaultPow = 1e8

// Value is a fixed-point decimal scaled by 1e8, used for prices and volumes.
type Value int64

var Zero = Value(0)
var One = NewFromInt(1)

func (v Value) Float64() float64 {
	return float64(v) / DefaultPow
}

func (v Value) Int64() int64 {
	return int64(v) / DefaultPow
}

func (v Value) Mul(v2 Value) Value {
	return NewFromFloat(v.Float64() * v2.Float64())
}

func (v Value) MulFloat64(v2 float64) Value {
	return NewFromFloat(v.Float64() * v2)
}

func (v Value) Div(v2 Value) Value {
	return NewFromFloat(v.Float64() / v2.Float64())
}

func (v Value) Sub(v2 Value) Value {
	return Value(int64(v) - int64(v2))
}

func (v Value) Add(v2 Value) Value {
	return Value(int64(v) + int64(v2))
}

func (v Value) IsZero() bool {
	return v == 0
}

func (v Value) Sign() int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func (v Value) Compare(v2 Value) int {
	switch {
	case v > v2:
		return 1
	case v < v2:
		return -1
	}
	return 0
}

func (v Value) String() string {
	return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
}

func Max(a, b Value) Value {
	if a > b {
		return a
	}
	return b
}

func Min(a, b Value) Value {
	if a < b {
		return a
	}
	return b
}

func Abs(v Value) Value {
	if v < 0 {
		return -v
	}
	return v
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Float64())
}

func (v *Value) UnmarshalYAML(unmarshal func(a interface{}) error) (err error) {
	var i int64
	if err = unmarshal(&i); err == nil {
		*v = NewFromInt64(i)
		return
	}

	var f float64
	if err = unmarshal(&f); err == nil {
		*v = NewFromFloat(f)
		return
	}

	var s string
	if err = unmarshal(&s); err == nil {
		nv, err2 := NewFromString(s)
		if err2 == nil {
			*v = nv
			return
		}
	}

	return err
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var a interface{}
	var err = json.Unmarshal(data, &a)
	if err != nil {
		return err
	}

	switch d := a.(type) {
	case string:
		nv, err2 := NewFromString(d)
		if err2 != nil {
			return err2
		}
		*v = nv

	case float64:
		*v = NewFromFloat(d)

	case int:
		*v = NewFromInt(d)

	case int64:
		*v = NewFromInt64(d)

	default:
		return errors.Errorf("unsupported type: %T %v", d, d)
	}

	return nil
}

func NewFromString(input string) (Value, error) {
	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, err
	}

	return NewFromFloat(v), nil
}

func MustNewFromString(input string) Value {
	v, err := NewFromString(input)
	if err != nil {
		panic(errors.Wrapf(err, "can not parse %s into fixedpoint", input))
	}
	return v
}

func NewFromFloat(val float64) Value {
	return Value(int64(math.Round(val * DefaultPow)))
}

func NewFromInt(val int) Value {
	return Value(int64(val) * DefaultPow)
}

func NewFromInt64(val int64) Value {
	return Value(val * DefaultPow)
}
