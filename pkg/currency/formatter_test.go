package currency

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		amount int64
		code   string
		want   string
	}{
		{4000, "INR", "INR 4,000"},
		{1250000, "idr", "IDR 1.250.000"},
		{999, "USD", "USD 999"},
		{-2500, "INR", "-INR 2,500"},
		{123456, "", "123,456"},
		{0, "INR", "INR 0"},
	}
	for _, c := range cases {
		if got := Format(c.amount, c.code); got != c.want {
			t.Errorf("Format(%d, %q) = %q, want %q", c.amount, c.code, got, c.want)
		}
	}
}
