package domain

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimit(t *testing.T) {
	for _, s := range []string{"Any", "any", " unlimited ", "Inf"} {
		l, err := ParseLimit[int](s)
		require.NoError(t, err, s)
		assert.True(t, l.IsUnbounded(), s)
	}

	l, err := ParseLimit[int]("12")
	require.NoError(t, err)
	v, ok := l.Value()
	assert.True(t, ok)
	assert.Equal(t, 12, v)

	// spreadsheet cells often arrive as "12.0"
	l, err = ParseLimit[int]("12.0")
	require.NoError(t, err)
	v, _ = l.Value()
	assert.Equal(t, 12, v)

	r, err := ParseLimit[float64]("7.5")
	require.NoError(t, err)
	fv, _ := r.Value()
	assert.Equal(t, 7.5, fv)

	_, err = ParseLimit[int]("")
	assert.Error(t, err)
	_, err = ParseLimit[int]("1.5")
	assert.Error(t, err)
	_, err = ParseLimit[float64]("ten")
	assert.Error(t, err)
}

func TestLimitComparisons(t *testing.T) {
	inf := Unbounded[float64]()
	assert.True(t, inf.Admits(math.MaxFloat64))
	assert.True(t, math.IsInf(inf.Float(), 1))
	assert.False(t, inf.Exhausted())

	ten := Bounded(10.0)
	assert.True(t, ten.Admits(10))
	assert.False(t, ten.Admits(10.01))

	one := Bounded(1)
	zero := one.Decrement()
	assert.True(t, zero.Exhausted())
	assert.Equal(t, zero, zero.Decrement())

	assert.Equal(t, UnlimitedLabel, Unbounded[int]().String())
	assert.Equal(t, "7.5", Bounded(7.5).String())
}

func TestLimitJSON(t *testing.T) {
	type payload struct {
		Capacity Limit[int]     `json:"capacity"`
		Radius   Limit[float64] `json:"radius"`
	}

	b, err := json.Marshal(payload{Capacity: Unbounded[int](), Radius: Bounded(12.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"capacity":"unlimited","radius":12.5}`, string(b))

	var got payload
	require.NoError(t, json.Unmarshal([]byte(`{"capacity":4,"radius":"Any"}`), &got))
	n, ok := got.Capacity.Value()
	assert.True(t, ok)
	assert.Equal(t, 4, n)
	assert.True(t, got.Radius.IsUnbounded())

	assert.Error(t, json.Unmarshal([]byte(`{"capacity":2.5}`), &got))
}

func TestCoordinatesValidate(t *testing.T) {
	assert.NoError(t, Coordinates{Lat: 12.97, Lon: 77.59}.Validate())
	assert.Error(t, Coordinates{Lat: 91, Lon: 0}.Validate())
	assert.Error(t, Coordinates{Lat: 0, Lon: -180.5}.Validate())
	assert.Error(t, Coordinates{Lat: math.NaN(), Lon: 0}.Validate())
}
