package probe

import "testing"

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    float64
		wantErr bool
	}{
		{"plain seconds", "185.338776\n", 185.338776, false},
		{"integer seconds", "42", 42, false},
		{"surrounding whitespace", "  3.5  \n", 3.5, false},
		{"empty output", "", 0, true},
		{"garbage", "N/A", 0, true},
		{"zero duration", "0.000000", 0, true},
		{"negative duration", "-1.5", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDuration(%q) error = %v, wantErr %v", tt.out, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDuration(%q) = %g, want %g", tt.out, got, tt.want)
			}
		})
	}
}
