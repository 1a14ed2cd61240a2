package styles

import (
	"testing"

	"gsc/tree"
)

func TestComputedFluidTypographyValue(t *testing.T) {
	tests := []struct {
		name   string
		args   FluidArgs
		want   string
		wantOK bool
	}{
		{
			name:   "px",
			args:   FluidArgs{FontSize: "15px"},
			want:   "clamp(14px, 0.875rem + ((1vw - 3.2px) * 0.078), 15px)",
			wantOK: true,
		},
		{
			name:   "rem",
			args:   FluidArgs{FontSize: "1.5rem"},
			want:   "clamp(0.984rem, 0.984rem + ((1vw - 0.2rem) * 0.645), 1.5rem)",
			wantOK: true,
		},
		{
			name:   "explicit bounds",
			args:   FluidArgs{MinimumFontSize: "20px", MaximumFontSize: "30px"},
			want:   "clamp(20px, 1.25rem + ((1vw - 3.2px) * 0.781), 30px)",
			wantOK: true,
		},
		{
			name:   "negligible range",
			args:   FluidArgs{MinimumFontSize: "20px", MaximumFontSize: "20.005px"},
			want:   "clamp(20px, 1.25rem + ((1vw - 3.2px) * 1), 20.005px)",
			wantOK: true,
		},
		{name: "under limit", args: FluidArgs{FontSize: "13px"}},
		{name: "unparsable", args: FluidArgs{FontSize: "large"}},
		{name: "same viewports", args: FluidArgs{FontSize: "20px", MinimumViewportWidth: "500px", MaximumViewportWidth: "500px"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ComputedFluidTypographyValue(tt.args)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ComputedFluidTypographyValue() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTypographyFontSizeValue(t *testing.T) {
	fluid := tree.Of("typography", tree.Of("fluid", true))
	tests := []struct {
		name     string
		preset   *tree.Map
		settings *tree.Map
		want     any
	}{
		{"not fluid", tree.Of("size", "15px"), nil, "15px"},
		{"fluid settings", tree.Of("size", "15px"), fluid, "clamp(14px, 0.875rem + ((1vw - 3.2px) * 0.078), 15px)"},
		{"opted out", tree.Of("size", "15px", "fluid", false), fluid, "15px"},
		{"preset bounds", tree.Of("size", "15px", "fluid", tree.Of("min", "20px", "max", "30px")), nil, "clamp(20px, 1.25rem + ((1vw - 3.2px) * 0.781), 30px)"},
		{"zero", tree.Of("size", "0"), fluid, "0"},
		{"number", tree.Of("size", 15.0), fluid, "clamp(14px, 0.875rem + ((1vw - 3.2px) * 0.078), 15px)"},
		{
			"wide size as viewport",
			tree.Of("size", "15px"),
			tree.Of("typography", tree.Of("fluid", true), "layout", tree.Of("wideSize", "1000px")),
			"clamp(14px, 0.875rem + ((1vw - 3.2px) * 0.147), 15px)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypographyFontSizeValue(tt.preset, tt.settings); got != tt.want {
				t.Errorf("TypographyFontSizeValue() = %v, want %v", got, tt.want)
			}
		})
	}
}
