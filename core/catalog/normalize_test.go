package catalog

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fix You", "fix you"},
		{"  Yellow  ", "yellow"},
		{"Señorita", "senorita"},
		{"Beyoncé", "beyonce"},
		{"Càfé Đen", "cafe đen"}, // Đ carries no combining mark, only accents are stripped
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
