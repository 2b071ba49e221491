package utils

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"Nil", nil, 0},
		{"Int", 7, 7},
		{"Float", 10.9, 10},
		{"NaN", math.NaN(), 0},
		{"String", "10", 10},
		{"Padded", " 2 ", 2},
		{"Decimal String", "2.5", 2},
		{"Garbage", "ten", 0},
		{"Empty", "", 0},
		{"Number", json.Number("42"), 42},
		{"Bytes", []byte("3"), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "s01", ToString("s01"))
	assert.Equal(t, "2021001", ToString(float64(2021001)))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "12", ToString(json.Number("12")))
	assert.Equal(t, "true", ToString(true))
}

func TestToID(t *testing.T) {
	for _, v := range []any{nil, "", false, float64(0), json.Number("0")} {
		assert.Empty(t, ToID(v), "%#v", v)
	}
	assert.Equal(t, "r1", ToID("r1"))
	assert.Equal(t, "7", ToID(float64(7)))
	assert.Equal(t, "true", ToID(true))
}

func TestToStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "2"}, ToStrings([]any{"a", float64(2)}))
	assert.Empty(t, ToStrings([]any{}))
	assert.Empty(t, ToStrings(nil))
}
