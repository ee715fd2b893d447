package dirwalk

import "testing"

func TestNormalizeStart(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "."},
		{".", "."},
		{"./", "."},
		{"a", "a"},
		{"a/", "a"},
		{"a///", "a"},
		{"./a/", "./a"},
		{"a//b/", "a//b"},
		{"/", "/"},
		{"///", "/"},
		{"/tmp/", "/tmp"},
		{"../x", "../x"},
	}
	for _, tt := range tests {
		if got := NormalizeStart(tt.in); got != tt.want {
			t.Errorf("NormalizeStart(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		dir, name, want string
	}{
		{".", "a", "./a"},
		{"a", "b", "a/b"},
		{"./a", "b", "./a/b"},
		{"/", "etc", "/etc"},
		{"/tmp", "x", "/tmp/x"},
		{"a", "", "a/"},
	}
	for _, tt := range tests {
		if got := JoinPath(tt.dir, tt.name); got != tt.want {
			t.Errorf("JoinPath(%q, %q) = %q, want %q", tt.dir, tt.name, got, tt.want)
		}
	}
}
