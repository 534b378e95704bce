package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Libreria-api/internal/domain/entity"
)

func TestValidPrice(t *testing.T) {
	cases := map[string]bool{
		"12.50":  true,
		"0.01":   true,
		"7":      true,
		"0.330":  true,
		"0.335":  false,
		"19.999": false,
		"0":      false,
		"-1.00":  false,
	}
	for in, want := range cases {
		assert.Equal(t, want, entity.ValidPrice(decimal.RequireFromString(in)), in)
	}
}
