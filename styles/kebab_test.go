package styles

import "testing"

func TestKebabCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"fontSize", "font-size"},
		{"h1", "h-1"},
		{"x-large", "x-large"},
		{"xLarge", "x-large"},
		{"2xl", "2-xl"},
		{"1st", "1st"},
		{"2nd-column", "2nd-column"},
		{"3rdParty", "3rd-party"},
		{"XMLHttpRequest", "xml-http-request"},
		{"1ST", "1st"},
		{"foo2Bar", "foo-2-bar"},
		{"it's", "its"},
		{"don’t stop", "dont-stop"},
		{"a'b'c", "ab-c"},
		{"wp--preset", "wp-preset"},
		{"custom/gap", "custom-gap"},
		{"  spaced out ", "spaced-out"},
		{"", ""},
		{"Über", "uber"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := KebabCase(tt.in); got != tt.want {
				t.Errorf("KebabCase(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
