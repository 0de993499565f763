package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAspect(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		want float64
	}{
		{"wide", 200, 100, 2},
		{"square", 64, 64, 1},
		{"no width", 0, 100, 0},
		{"no height", 100, 0, 0},
		{"negative", -4, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aspect(tt.w, tt.h))
		})
	}
}
