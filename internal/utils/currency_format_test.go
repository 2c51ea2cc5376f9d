package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nabung-ai/tabungan_backend/internal/utils"
)

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{50000, "Rp 50.000"},
		{1500000, "Rp 1.500.000"},
		{-40000, "-Rp 40.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, utils.FormatRupiah(tt.amount))
	}
}
