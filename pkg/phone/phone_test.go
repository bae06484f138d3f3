package phone

import "testing"

func TestNormalizeUS(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"555-123-4567", "+15551234567", true},
		{"(555) 123-4567", "+15551234567", true},
		{"5551234567", "+15551234567", true},
		{"1-555-123-4567", "+15551234567", true},
		{"+1 555 123 4567", "+15551234567", true},
		{"+15551234567", "+15551234567", true},
		{"123", "", false},
		{"", "", false},
		{"+44 20 7946 0958", "", false},
		{"25551234567", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeUS(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeUS(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
