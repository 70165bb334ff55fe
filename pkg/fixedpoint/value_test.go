package fixedpoint

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFromString(t *testing.T) {
	f, err := NewFromString("0.00000003")
	assert.NoError(t, err)
	assert.Equal(t, Value(3), f)

	f, err = NewFromString("42195.5")
	assert.NoError(t, err)
	assert.Equal(t, "42195.5", f.String())
}

func TestArithmetic(t *testing.T) {
	a := NewFromFloat(10.0)
	b := NewFromFloat(3.0)

	assert.Equal(t, NewFromFloat(13.0), a.Add(b))
	assert.Equal(t, NewFromFloat(7.0), a.Sub(b))
	assert.InDelta(t, 30.0, a.Mul(b).Float64(), 1e-8)
	assert.InDelta(t, 10.0/3.0, a.Div(b).Float64(), 1e-8)
}

func TestUnmarshalJSON(t *testing.T) {
	var v Value

	assert.NoError(t, json.Unmarshal([]byte(`"3.1415"`), &v))
	assert.Equal(t, NewFromFloat(3.1415), v)

	assert.NoError(t, json.Unmarshal([]byte(`100`), &v))
	assert.Equal(t, NewFromInt(100), v)
}

func TestAvg(t *testing.T) {
	values := []Value{NewFromInt(10), NewFromInt(11), NewFromInt(12)}
	assert.Equal(t, NewFromInt(11), Avg(values))
}
