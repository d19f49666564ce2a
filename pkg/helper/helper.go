package helper

import (
	"fmt"
	"hash/fnv"
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const Ellipsis = "…"

// TruncateRaceName keeps names up to max runes and cuts longer ones to max
// runes followed by an ellipsis. Runes are counted as given, so a decomposed
// accent counts twice.
func TruncateRaceName(name string, max int) string {
	runes := []rune(name)
	if max < 0 || len(runes) <= max {
		return name
	}
	return string(runes[:max]) + Ellipsis
}

func FormatPoints(points float64) string {
	return fmt.Sprintf("%d pts", int(points))
}

func GetDriverCodeName(name string) string {
	// first letter of the name and first 2 letters of the surname
	if name == "" {
		return ""
	}
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	first := []rune(words[0])
	code := string(first[0])
	if len(words) > 1 {
		last := []rune(words[len(words)-1])
		if len(last) > 2 {
			code += string(last[:2])
		} else {
			code += string(last)
		}
	} else {
		if len(first) > 2 {
			code += string(first[1:3])
		} else {
			code += string(first[1:])
		}
	}
	return strings.ToUpper(code)
}

// ParseHexColor accepts #RGB and #RRGGBB.
func ParseHexColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return c, errors.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return c, errors.Wrapf(err, "invalid color %q", s)
	}
	c.R = uint8(v >> 16)
	c.G = uint8(v >> 8)
	c.B = uint8(v)
	return c, nil
}

// convert name to a stable numeric id usable in file names
func ToID(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return fmt.Sprint(h.Sum32())
}
