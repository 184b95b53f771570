package common

import "testing"

func TestContainsAnyFold(t *testing.T) {
	tests := []struct {
		name string
		s    string
		subs []string
		want bool
	}{
		{"exact", "sandy", []string{"sandy"}, true},
		{"mixed case", "Sandy Loam", []string{"sandy"}, true},
		{"upper substring", "heavy clay", []string{"CLAY"}, true},
		{"second candidate", "Loamy", []string{"clay", "loam"}, true},
		{"no match", "Loamy", []string{"sandy", "clay"}, false},
		{"empty input", "", []string{"sandy"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsAnyFold(tt.s, tt.subs...); got != tt.want {
				t.Errorf("ContainsAnyFold(%q, %v) = %v, want %v", tt.s, tt.subs, got, tt.want)
			}
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", " Asha ", "User"); got != "Asha" {
		t.Errorf("FirstNonEmpty() = %q, want %q", got, "Asha")
	}
	if got := FirstNonEmpty("", " "); got != "" {
		t.Errorf("FirstNonEmpty() = %q, want empty", got)
	}
}
