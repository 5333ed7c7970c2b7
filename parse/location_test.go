package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitLocation(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		street string
		city   string
	}{
		{"street and city", "ул. Ленина 5, Казань", "ул. Ленина 5", "Казань"},
		{"extra spaces", "  ул. Ленина 5 ,  Казань ", "ул. Ленина 5", "Казань"},
		{"no comma", "ул. Ленина 5", "ул. Ленина 5", ""},
		{"trailing comma", "ул. Ленина 5,", "ул. Ленина 5,", ""},
		{"comma then spaces", "ул. Ленина 5,   ", "ул. Ленина 5,", ""},
		{"only first comma splits", "а, б, в", "а", "б, в"},
		{"empty", "", "", ""},
		{"whitespace only", "   ", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			street, city := SplitLocation(tt.in)
			assert.Equal(t, tt.street, street)
			assert.Equal(t, tt.city, city)
		})
	}
}
