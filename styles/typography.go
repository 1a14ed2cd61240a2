package styles

import (
	"math"
	"regexp"
	"strconv"

	"gsc/tree"
)

const (
	defaultMaximumViewportWidth   = "1600px"
	defaultMinimumViewportWidth   = "320px"
	defaultScaleFactor            = 1.0
	defaultMinimumFontSizeFactorL = 0.25
	defaultMinimumFontSizeFactorH = 0.75
	defaultMinimumFontSizeLimit   = "14px"
	rootFontSize                  = 16.0
)

var reTypographyValue = regexp.MustCompile(`^(\d*\.?\d+)(rem|px|em)$`)

type sizeValue struct {
	value float64
	unit  string
}

func (s sizeValue) String() string {
	return tree.FormatNumber(s.value) + s.unit
}

// typographyValueAndUnit parses CSS size in px, em or rem. Bare numbers are
// pixels. When coerceTo is set value is converted to that unit.
func typographyValueAndUnit(raw any, coerceTo string) (sizeValue, bool) {
	var s string
	switch v := raw.(type) {
	case float64:
		s = tree.FormatNumber(v) + "px"
	case string:
		if _, ok := tree.Number(v); ok {
			s = v + "px"
		} else {
			s = v
		}
	default:
		return sizeValue{}, false
	}

	m := reTypographyValue.FindStringSubmatch(s)
	if m == nil {
		return sizeValue{}, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return sizeValue{}, false
	}
	unit := m[2]

	switch {
	case coerceTo == "px" && (unit == "em" || unit == "rem"):
		value *= rootFontSize
		unit = coerceTo
	case unit == "px" && (coerceTo == "em" || coerceTo == "rem"):
		value /= rootFontSize
		unit = coerceTo
	case (coerceTo == "em" || coerceTo == "rem") && (unit == "em" || unit == "rem"):
		unit = coerceTo
	}
	return sizeValue{value: roundToPrecision(value, 3), unit: unit}, true
}

func roundToPrecision(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

// FluidArgs are inputs of ComputedFluidTypographyValue. Empty strings mean
// "not set" and select defaults.
type FluidArgs struct {
	MinimumFontSize      string
	MaximumFontSize      string
	FontSize             string
	MinimumViewportWidth string
	MaximumViewportWidth string
	ScaleFactor          float64
	MinimumFontSizeLimit string
}

// ComputedFluidTypographyValue returns clamp() expression scaling font size
// linearly between minimum and maximum viewport widths. False is returned when
// sizes cannot be parsed or fluid value makes no sense.
func ComputedFluidTypographyValue(args FluidArgs) (string, bool) {
	var (
		minimumFontSize = args.MinimumFontSize
		maximumFontSize = args.MaximumFontSize
		minViewport     = args.MinimumViewportWidth
		maxViewport     = args.MaximumViewportWidth
		scaleFactor     = args.ScaleFactor
		limit           = args.MinimumFontSizeLimit
	)
	if minViewport == "" {
		minViewport = defaultMinimumViewportWidth
	}
	if maxViewport == "" {
		maxViewport = defaultMaximumViewportWidth
	}
	if scaleFactor == 0 {
		scaleFactor = defaultScaleFactor
	}
	if _, ok := typographyValueAndUnit(limit, ""); !ok {
		limit = defaultMinimumFontSizeLimit
	}

	if args.FontSize != "" {
		fontSize, ok := typographyValueAndUnit(args.FontSize, "")
		if !ok {
			return "", false
		}
		limitParsed, limitOK := typographyValueAndUnit(limit, fontSize.unit)
		limitOK = limitOK && limitParsed.value != 0

		// font sizes under the limit do not need to scale down
		if limitOK && minimumFontSize == "" && maximumFontSize == "" && fontSize.value <= limitParsed.value {
			return "", false
		}
		if maximumFontSize == "" {
			maximumFontSize = fontSize.String()
		}
		if minimumFontSize == "" {
			px := fontSize.value
			if fontSize.unit != "px" {
				px *= rootFontSize
			}
			factor := math.Min(math.Max(1-0.075*math.Log2(px), defaultMinimumFontSizeFactorL), defaultMinimumFontSizeFactorH)
			calculated := roundToPrecision(fontSize.value*factor, 3)
			if limitOK && calculated < limitParsed.value {
				minimumFontSize = limitParsed.String()
			} else {
				minimumFontSize = sizeValue{value: calculated, unit: fontSize.unit}.String()
			}
		}
	}

	minParsed, minOK := typographyValueAndUnit(minimumFontSize, "")
	unit := "rem"
	if minOK && minParsed.unit != "" {
		unit = minParsed.unit
	}
	maxParsed, maxOK := typographyValueAndUnit(maximumFontSize, unit)
	if !minOK || !maxOK {
		return "", false
	}

	minRem, remOK := typographyValueAndUnit(minimumFontSize, "rem")
	maxViewportParsed, maxVOK := typographyValueAndUnit(maxViewport, unit)
	minViewportParsed, minVOK := typographyValueAndUnit(minViewport, unit)
	if !maxVOK || !minVOK || !remOK {
		return "", false
	}

	denominator := maxViewportParsed.value - minViewportParsed.value
	if denominator == 0 {
		return "", false
	}

	offset := roundToPrecision(minViewportParsed.value/100, 3)
	linear := roundToPrecision(100*((maxParsed.value-minParsed.value)/denominator), 3)
	if linear == 0 || math.IsNaN(linear) {
		linear = 1
	}
	linearScaled := roundToPrecision(linear*scaleFactor, 3)

	target := minRem.String() + " + ((1vw - " + tree.FormatNumber(offset) + unit + ") * " + tree.FormatNumber(linearScaled) + ")"
	return "clamp(" + minimumFontSize + ", " + target + ", " + maximumFontSize + ")", true
}

// fluidEnabled reports whether "fluid" value of an object turns fluid
// typography on: true or non empty object.
func fluidEnabled(m *tree.Map) bool {
	switch f := m.Value("fluid").(type) {
	case bool:
		return f
	case *tree.Map:
		return f.Len() > 0
	}
	return false
}

// fluidOptions returns fluid typography options of settings. Wide layout size
// serves as maximum viewport width unless configured explicitly.
func fluidOptions(settings *tree.Map) *tree.Map {
	typography := settings.Map("typography")
	fluid := typography.Map("fluid")

	wide := tree.Lookup(settings, "layout", "wideSize")
	if _, ok := typographyValueAndUnit(wide, ""); ok && fluidEnabled(typography) {
		opts := tree.Of("maxViewportWidth", wide)
		for k, v := range fluid.All() {
			opts = opts.With(k, v)
		}
		return opts
	}
	return fluid
}

// TypographyFontSizeValue returns font size of a preset, which is a fluid
// clamp() expression when fluid typography is on either globally in settings
// or for the preset itself. Otherwise the size is returned as is.
func TypographyFontSizeValue(preset *tree.Map, settings *tree.Map) any {
	size := preset.Value("size")
	if !tree.Truthy(size) || size == "0" || preset.Value("fluid") == false {
		return size
	}
	if !fluidEnabled(settings.Map("typography")) && !fluidEnabled(preset) {
		return size
	}

	opts := fluidOptions(settings)
	presetFluid := preset.Map("fluid")

	value, ok := ComputedFluidTypographyValue(FluidArgs{
		MinimumFontSize:      optString(presetFluid.Value("min")),
		MaximumFontSize:      optString(presetFluid.Value("max")),
		FontSize:             tree.String(size),
		MinimumFontSizeLimit: optString(opts.Value("minFontSize")),
		MaximumViewportWidth: optString(opts.Value("maxViewportWidth")),
		MinimumViewportWidth: optString(opts.Value("minViewportWidth")),
	})
	if !ok {
		return size
	}
	return value
}

// optString renders optional value, unset and falsy values become empty.
func optString(v any) string {
	if !tree.Truthy(v) {
		return ""
	}
	return tree.String(v)
}
