package fields

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Transform normalizes a raw field value. It returns the cleaned value and
// any warnings produced while cleaning; transforms never fail the field.
type Transform func(value string) (string, []string)

// Chain applies transforms left to right.
func Chain(transforms ...Transform) Transform {
	return func(value string) (string, []string) {
		var warnings []string
		for _, t := range transforms {
			var w []string
			value, w = t(value)
			warnings = append(warnings, w...)
		}
		return value, warnings
	}
}

// ClampInt coerces the value to an integer clamped to [min, max]. Input that
// does not parse as an integer maps to 0 rather than failing; the lenient
// policy keeps one bad score from rejecting a whole file.
func ClampInt(min, max int) Transform {
	return func(value string) (string, []string) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return "0", nil
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return "0", []string{fmt.Sprintf("non-numeric value %q coerced to 0", trimmed)}
		}
		if n < min {
			return strconv.Itoa(min), []string{fmt.Sprintf("value %d clamped to %d", n, min)}
		}
		if n > max {
			return strconv.Itoa(max), []string{fmt.Sprintf("value %d clamped to %d", n, max)}
		}
		return strconv.Itoa(n), nil
	}
}

// NonNegativeInt coerces to an integer floored at zero.
func NonNegativeInt() Transform {
	return func(value string) (string, []string) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return "0", nil
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return "0", []string{fmt.Sprintf("non-numeric value %q coerced to 0", trimmed)}
		}
		if n < 0 {
			return "0", []string{fmt.Sprintf("negative value %d coerced to 0", n)}
		}
		return strconv.Itoa(n), nil
	}
}

// LenientFloat coerces to a float, mapping unparseable input to 0.
func LenientFloat() Transform {
	return func(value string) (string, []string) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return "0", nil
		}
		trimmed = strings.TrimSuffix(trimmed, "%")
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return "0", []string{fmt.Sprintf("non-numeric value %q coerced to 0", value)}
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
}

// ClampFloat coerces to a float clamped to [min, max].
func ClampFloat(min, max float64) Transform {
	return func(value string) (string, []string) {
		cleaned, warnings := LenientFloat()(value)
		f, _ := strconv.ParseFloat(cleaned, 64)
		if f < min {
			return strconv.FormatFloat(min, 'f', -1, 64), append(warnings, fmt.Sprintf("value %v clamped to %v", f, min))
		}
		if f > max {
			return strconv.FormatFloat(max, 'f', -1, 64), append(warnings, fmt.Sprintf("value %v clamped to %v", f, max))
		}
		return cleaned, warnings
	}
}

// LenientBool normalizes truthy and falsy spellings, defaulting to false.
func LenientBool() Transform {
	return func(value string) (string, []string) {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "yes", "1", "on", "active":
			return "true", nil
		case "", "false", "no", "0", "off", "inactive":
			return "false", nil
		default:
			return "false", []string{fmt.Sprintf("unrecognized boolean %q coerced to false", value)}
		}
	}
}

// colorPalette maps named colors to the site's hex values.
var colorPalette = map[string]string{
	"blue":   "#3B82F6",
	"green":  "#10B981",
	"red":    "#EF4444",
	"orange": "#F97316",
	"purple": "#8B5CF6",
	"pink":   "#EC4899",
	"yellow": "#EAB308",
	"teal":   "#14B8A6",
	"indigo": "#6366F1",
	"gray":   "#6B7280",
}

// defaultColor is used for unrecognized or malformed color input.
const defaultColor = "#6B7280"

// PaletteColor maps a color name through the fixed palette. Strings that
// already look like hex colors pass through unchanged; anything else falls
// back to the default gray.
func PaletteColor() Transform {
	return func(value string) (string, []string) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return defaultColor, nil
		}
		if isHexColor(trimmed) {
			return trimmed, nil
		}
		if hex, ok := colorPalette[strings.ToLower(trimmed)]; ok {
			return hex, nil
		}
		return defaultColor, []string{fmt.Sprintf("unknown color %q mapped to default", trimmed)}
	}
}

func isHexColor(value string) bool {
	if !strings.HasPrefix(value, "#") {
		return false
	}
	digits := value[1:]
	if len(digits) != 3 && len(digits) != 6 {
		return false
	}
	for _, r := range digits {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// SafeURL clears values that are not absolute http(s) URLs. Clearing rather
// than erroring keeps javascript: and data: payloads out of the store without
// rejecting the file they arrived in.
func SafeURL() Transform {
	return func(value string) (string, []string) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return "", nil
		}
		parsed, err := url.Parse(trimmed)
		if err != nil {
			return "", []string{fmt.Sprintf("unparseable URL %q cleared", trimmed)}
		}
		scheme := strings.ToLower(parsed.Scheme)
		if scheme != "http" && scheme != "https" {
			return "", []string{fmt.Sprintf("URL with scheme %q cleared", parsed.Scheme)}
		}
		return trimmed, nil
	}
}

// ReadTime ensures a positive read time, leaving empty values alone so the
// estimator can fill them from the body word count.
func ReadTime() Transform {
	return func(value string) (string, []string) {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			return "", nil
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil || n < 1 {
			return "1", []string{fmt.Sprintf("invalid read time %q coerced to 1", trimmed)}
		}
		return strconv.Itoa(n), nil
	}
}

// Hashtag normalizes hashtags to a single leading '#'.
func Hashtag() Transform {
	return func(value string) (string, []string) {
		trimmed := strings.TrimLeft(strings.TrimSpace(value), "#")
		if trimmed == "" {
			return "", nil
		}
		return "#" + trimmed, nil
	}
}
