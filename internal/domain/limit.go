package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UnlimitedLabel is how an unbounded limit is rendered in output files.
const UnlimitedLabel = "unlimited"

// Number is the set of numeric kinds a Limit can bound.
type Number interface {
	~int | ~float64
}

// Limit is a bounded value or +infinity. The zero value is a bounded zero.
type Limit[T Number] struct {
	value     T
	unbounded bool
}

func Bounded[T Number](v T) Limit[T] { return Limit[T]{value: v} }

func Unbounded[T Number]() Limit[T] { return Limit[T]{unbounded: true} }

func (l Limit[T]) IsUnbounded() bool { return l.unbounded }

// Value returns the bound and false when the limit is unbounded.
func (l Limit[T]) Value() (T, bool) {
	if l.unbounded {
		var zero T
		return zero, false
	}
	return l.value, true
}

// Admits reports whether x <= l.
func (l Limit[T]) Admits(x T) bool {
	return l.unbounded || x <= l.value
}

// Exhausted reports whether a bounded limit has reached zero.
func (l Limit[T]) Exhausted() bool {
	return !l.unbounded && l.value <= 0
}

// Decrement lowers a bounded limit by one, saturating at zero.
func (l Limit[T]) Decrement() Limit[T] {
	if l.unbounded || l.value <= 0 {
		return l
	}
	return Limit[T]{value: l.value - 1}
}

// Float returns the limit as a float64, +Inf when unbounded.
func (l Limit[T]) Float() float64 {
	if l.unbounded {
		return math.Inf(1)
	}
	return float64(l.value)
}

func (l Limit[T]) String() string {
	if l.unbounded {
		return UnlimitedLabel
	}
	return strconv.FormatFloat(float64(l.value), 'f', -1, 64)
}

func (l Limit[T]) MarshalJSON() ([]byte, error) {
	if l.unbounded {
		return json.Marshal(UnlimitedLabel)
	}
	return json.Marshal(l.value)
}

func (l *Limit[T]) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, err := ParseLimit[T](s)
		if err != nil {
			return err
		}
		*l = parsed
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("limit: expected number or %q: %w", UnlimitedLabel, err)
	}
	parsed, err := limitFromFloat[T](f)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// IsUnlimitedSentinel reports whether a raw text cell means "no limit".
func IsUnlimitedSentinel(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "any", "unlimited", "inf", "infinity":
		return true
	}
	return false
}

// ParseLimit converts raw text into a Limit, mapping the unlimited sentinels
// to an unbounded value. Integer limits reject fractional input.
func ParseLimit[T Number](s string) (Limit[T], error) {
	s = strings.TrimSpace(s)
	if IsUnlimitedSentinel(s) {
		return Unbounded[T](), nil
	}
	if s == "" {
		return Limit[T]{}, fmt.Errorf("empty value")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Limit[T]{}, fmt.Errorf("parse %q: %w", s, err)
	}
	return limitFromFloat[T](f)
}

func limitFromFloat[T Number](f float64) (Limit[T], error) {
	if math.IsNaN(f) {
		return Limit[T]{}, fmt.Errorf("value is NaN")
	}
	if math.IsInf(f, 1) {
		return Unbounded[T](), nil
	}
	if math.IsInf(f, -1) {
		return Limit[T]{}, fmt.Errorf("value is -Inf")
	}

	v := T(f)
	if float64(v) != f {
		return Limit[T]{}, fmt.Errorf("%v is not a whole number", f)
	}
	return Bounded(v), nil
}
