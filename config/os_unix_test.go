//go:build !windows

package config

import "testing"

func TestCleanFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"theme-global-styles.css", "theme-global-styles.css"},
		{"sub/theme.css", "subtheme.css"},
		{"a:b.css", "ab.css"},
		{"..hidden.css", "hidden.css"},
		{"/", "_bad_file_name_"},
		{"", "_bad_file_name_"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := CleanFileName(tt.in); got != tt.want {
				t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
