package server_test

import (
	"testing"

	"race-admin/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_BodyLimit(t *testing.T) {
	tests := []struct {
		name string
		mb   int
		want int
	}{
		{"Configured", 8, 8 * 1024 * 1024},
		{"One", 1, 1024 * 1024},
		{"Zero falls back", 0, 4 * 1024 * 1024},
		{"Negative falls back", -3, 4 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{BodyLimitMB: tt.mb}
			assert.Equal(t, tt.want, c.BodyLimit())
		})
	}
}
