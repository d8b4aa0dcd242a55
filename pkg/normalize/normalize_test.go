package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlightNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"277", "0277"},
		{"GF277", "0277"},
		{"0277", "0277"},
		{"12345", "2345"},
		{"", "0000"},
		{"GF", "0000"},
		{"7", "0007"},
		{" 1 2 ", "0012"},
	}
	for _, tt := range tests {
		got := FlightNumber(tt.raw)
		assert.Equal(t, tt.want, got, "FlightNumber(%q)", tt.raw)
		assert.Len(t, got, 4)
	}
}

func TestUnpadFlightNumber(t *testing.T) {
	assert.Equal(t, "277", UnpadFlightNumber("0277"))
	assert.Equal(t, "277", UnpadFlightNumber("GF0277"))
	assert.Equal(t, "12", UnpadFlightNumber("12"))
	assert.Equal(t, "0", UnpadFlightNumber(""))
	assert.Equal(t, "0", UnpadFlightNumber("0000"))
}

func TestSplitNameSurnameFirst(t *testing.T) {
	given, surname := SplitNameSurnameFirst("ALMANNAI AHMED KHALID")
	assert.Equal(t, "AHMED KHALID", given)
	assert.Equal(t, "ALMANNAI", surname)

	given, surname = SplitNameSurnameFirst("ALMANNAI")
	assert.Equal(t, "ALMANNAI", given)
	assert.Equal(t, "", surname)

	given, surname = SplitNameSurnameFirst("   ")
	assert.Equal(t, "", given)
	assert.Equal(t, "", surname)
}

func TestSplitNameSurnameLast(t *testing.T) {
	given, surname := SplitNameSurnameLast("MOHAMMAD BARKATH ALI")
	assert.Equal(t, "MOHAMMAD BARKATH", given)
	assert.Equal(t, "ALI", surname)

	given, surname = SplitNameSurnameLast("MOHAMMAD")
	assert.Equal(t, "MOHAMMAD", given)
	assert.Equal(t, "", surname)

	given, surname = SplitNameSurnameLast("")
	assert.Equal(t, "", given)
	assert.Equal(t, "", surname)
}

func TestTime(t *testing.T) {
	assert.Equal(t, "14:05", Time("14:05:00"))
	assert.Equal(t, "14:05", Time("14:05"))
	assert.Equal(t, "09:30", Time("9:30"))
	assert.Equal(t, "", Time(""))
	assert.Equal(t, "", Time("garbage"))
	assert.Equal(t, "", Time("25:99:xx"))
}

func TestTerminalNumber(t *testing.T) {
	n, ok := TerminalNumber("T1")
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	n, ok = TerminalNumber("Terminal 2")
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = TerminalNumber("Main")
	assert.False(t, ok)

	_, ok = TerminalNumber("")
	assert.False(t, ok)
}

func TestExtractTimeAndDate(t *testing.T) {
	assert.Equal(t, "16:45", ExtractTime("2024-01-05T16:45:00"))
	assert.Equal(t, "05/01/2024", ExtractDate("2024-01-05T16:45:00"))

	assert.Equal(t, "16:45", ExtractTime("2024-01-05 16:45:00"))
	assert.Equal(t, "05/01/2024", ExtractDate("2024-01-05"))

	assert.Equal(t, "", ExtractTime(""))
	assert.Equal(t, "", ExtractDate(""))
	assert.Equal(t, "", ExtractTime("not a timestamp"))
	assert.Equal(t, "", ExtractDate("not a timestamp"))
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "+973******78", MaskPhone("+97312345678"))
	assert.Equal(t, "1234**89", MaskPhone("12345689"))
	assert.Equal(t, "****", MaskPhone("123"))
	assert.Equal(t, "****", MaskPhone(""))
	// Exactly six characters: nothing left to hide but the shape holds.
	assert.Equal(t, "123456"[:4]+"56", MaskPhone("123456"))
}
