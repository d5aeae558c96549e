package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 5*time.Minute, ParseDuration(""))
	assert.Equal(t, 5*time.Minute, ParseDuration("soon"))
	assert.Equal(t, 5*time.Minute, ParseDuration("-1s"))
	assert.Equal(t, 30*time.Second, ParseDuration("30s"))
}

func TestCleanCell(t *testing.T) {
	tests := map[string]string{
		`"123.4"`:   "123.4",
		` 12 `:      "12",
		`"" `:       "",
		`"" 5 ""`:   "5",
		` "7" `:     `"7"`,
		`""quoted"`: "quoted",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanCell(in), "CleanCell(%q)", in)
	}
}

func TestStripQuotes(t *testing.T) {
	assert.Equal(t, "FRA", StripQuotes(`"FRA"`))
	assert.Equal(t, "FRA", StripQuotes(`""FRA"`))
	assert.Equal(t, " FRA", StripQuotes(`" FRA"`))
}
