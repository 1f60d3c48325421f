package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate_BasicASCII(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"Smart Fitness Watch", "smart-fitness-watch"},
		{"ALL UPPER CASE", "all-upper-case"},
		{"  padded  ", "padded"},
		{"Wireless Noise-Cancelling Headphones", "wireless-noise-cancelling-headphones"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}

func TestGenerate_Diacritics(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Kadın Giyim", "kadin-giyim"},
		{"Çocuk Ürünleri", "cocuk-urunleri"},
		{"İstanbul", "istanbul"},
		{"Crème Brûlée Set", "creme-brulee-set"},
		{"Straße Schuhe", "strasse-schuhe"},
		{"Smørrebrød Plate", "smorrebrod-plate"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}

func TestGenerate_Punctuation(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Salt & Pepper   Mill!", "salt-and-pepper-mill"},
		{"--leading and trailing--", "leading-and-trailing"},
		{"4K / HDR TV (55\")", "4k-hdr-tv-55"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Generate(tt.input))
		})
	}
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "desk-lamp-12", WithSuffix("Desk Lamp", 12))
	assert.Equal(t, "item-3", WithSuffix("???", 3))
}
