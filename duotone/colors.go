package duotone

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"

	"gsc/tree"
)

// ErrBadColor is returned for colour strings which could not be parsed.
var ErrBadColor = errors.New("unable to parse color")

// ParseColor converts CSS colour string (name, hex with optional alpha,
// rgb(), rgba(), hsl() and "transparent") into colour value.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return color.NRGBA{}, fmt.Errorf("%w: empty string", ErrBadColor)
	case s == "transparent":
		return color.NRGBA{}, nil
	case strings.HasPrefix(s, "#"):
		return parseHex(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return toNRGBA(c), nil
	}
	c, err := oksvg.ParseSVGColor(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q: %w", ErrBadColor, s, err)
	}
	if c == nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return toNRGBA(c), nil
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// parseHex handles #rgb, #rgba, #rrggbb and #rrggbbaa.
func parseHex(s string) (color.NRGBA, error) {
	digits := s[1:]
	if len(digits) == 3 || len(digits) == 4 {
		var b strings.Builder
		for _, r := range digits {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		digits = b.String()
	}
	if len(digits) == 6 {
		digits += "ff"
	}
	if len(digits) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q: wrong length", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q: %w", ErrBadColor, s, err)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Channels are per channel transfer tables, values in [0, 1].
type Channels struct {
	R, G, B, A []float64
}

// ChannelValues splits colours into transfer tables. Unparsable colours are
// logged and treated as opaque black.
func ChannelValues(colors []string, log *zap.Logger) Channels {
	if log == nil {
		log = zap.NewNop()
	}
	ch := Channels{
		R: make([]float64, 0, len(colors)),
		G: make([]float64, 0, len(colors)),
		B: make([]float64, 0, len(colors)),
		A: make([]float64, 0, len(colors)),
	}
	for _, s := range colors {
		c, err := ParseColor(s)
		if err != nil {
			log.Debug("Using black for duotone color", zap.String("color", s), zap.Error(err))
			c = color.NRGBA{A: 0xff}
		}
		ch.R = append(ch.R, float64(c.R)/255)
		ch.G = append(ch.G, float64(c.G)/255)
		ch.B = append(ch.B, float64(c.B)/255)
		ch.A = append(ch.A, roundTo(float64(c.A)/255, 3))
	}
	return ch
}

// Brightness returns perceived brightness of the colour in [0, 1].
func Brightness(c color.NRGBA) float64 {
	return roundTo((float64(c.R)*299+float64(c.G)*587+float64(c.B)*114)/1000/255, 2)
}

func roundTo(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

// DefaultColors picks darkest and lightest colours of the palette (list of
// presets with "color" key). Palettes with less than two entries give black
// and white.
func DefaultColors(palette []any) []string {
	if len(palette) < 2 {
		return []string{"#000", "#fff"}
	}
	var darkest, lightest string
	minBright, maxBright := 1.0, 0.0
	for _, item := range palette {
		s := tree.String(tree.Lookup(item, "color"))
		c, err := ParseColor(s)
		if err != nil {
			c = color.NRGBA{A: 0xff}
		}
		b := Brightness(c)
		if b <= minBright {
			darkest, minBright = s, b
		}
		if b >= maxBright {
			lightest, maxBright = s, b
		}
	}
	return []string{darkest, lightest}
}

// GradientFromColors returns hard stop linear gradient previewing the
// colours.
func GradientFromColors(colors []string, angle string) string {
	if angle == "" {
		angle = "90deg"
	}
	l := 100 / float64(len(colors))
	stops := make([]string, 0, len(colors))
	for i, c := range colors {
		stops = append(stops, c+" "+tree.FormatNumber(float64(i)*l)+"%, "+c+" "+tree.FormatNumber(float64(i+1)*l)+"%")
	}
	return "linear-gradient( " + angle + ", " + strings.Join(stops, ", ") + " )"
}

// ColorStop is a gradient stop, position in percents.
type ColorStop struct {
	Position float64
	Color    string
}

// ColorStops spreads colours evenly over [0, 100].
func ColorStops(colors []string) []ColorStop {
	stops := make([]ColorStop, 0, len(colors))
	for i, c := range colors {
		pos := 0.0
		if len(colors) > 1 {
			pos = float64(i) * 100 / float64(len(colors)-1)
		}
		stops = append(stops, ColorStop{Position: pos, Color: c})
	}
	return stops
}

// ColorsFromStops is the reverse of ColorStops.
func ColorsFromStops(stops []ColorStop) []string {
	colors := make([]string, 0, len(stops))
	for _, s := range stops {
		colors = append(colors, s.Color)
	}
	return colors
}

// ColorsFromPreset returns colours of the duotone preset referenced by value
// ("var:preset|duotone|<slug>") or nil.
func ColorsFromPreset(value string, presets []any) []string {
	if value == "" {
		return nil
	}
	for _, p := range presets {
		if value == "var:preset|duotone|"+tree.String(tree.Lookup(p, "slug")) {
			return stringList(tree.Lookup(p, "colors"))
		}
	}
	return nil
}

// PresetFromColors returns reference to the first preset with exactly these
// colours or empty string.
func PresetFromColors(colors []string, presets []any) string {
	if colors == nil {
		return ""
	}
	for _, p := range presets {
		pc := stringList(tree.Lookup(p, "colors"))
		if len(pc) != len(colors) {
			continue
		}
		same := true
		for i := range pc {
			if pc[i] != colors[i] {
				same = false
				break
			}
		}
		if same {
			return "var:preset|duotone|" + tree.String(tree.Lookup(p, "slug"))
		}
	}
	return ""
}

func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, tree.String(item))
	}
	return out
}
