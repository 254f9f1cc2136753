package layout

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor 支持三种写法："r,g,b"（0-1 浮点）、#rgb / #rrggbb、CSS 颜色名。
func ParseColor(value string) (Color, error) {
	v := strings.TrimSpace(value)
	switch {
	case v == "":
		return Color{}, fmt.Errorf("%w: 颜色值为空", ErrResolve)
	case strings.Contains(v, ","):
		parts := strings.Split(v, ",")
		if len(parts) != 3 {
			return Color{}, fmt.Errorf("%w: 颜色 %q 需要 3 个分量", ErrResolve, value)
		}
		var rgb [3]float64
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return Color{}, fmt.Errorf("%w: 颜色分量 %q 不是数字", ErrResolve, p)
			}
			rgb[i] = f
		}
		return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
	case strings.HasPrefix(v, "#"):
		return parseHex(v)
	}
	named, ok := colornames.Map[strings.ToLower(v)]
	if !ok {
		return Color{}, fmt.Errorf("%w: 未知的颜色名 %q", ErrResolve, value)
	}
	return Color{
		R: float64(named.R) / 255,
		G: float64(named.G) / 255,
		B: float64(named.B) / 255,
	}, nil
}

func parseHex(value string) (Color, error) {
	hex := strings.TrimPrefix(value, "#")
	if len(hex) == 3 {
		hex = strings.Repeat(hex[0:1], 2) + strings.Repeat(hex[1:2], 2) + strings.Repeat(hex[2:3], 2)
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: 颜色值 %s 无法解析", ErrResolve, value)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: 颜色值 %s 无法解析", ErrResolve, value)
	}
	return Color{
		R: float64(n>>16&0xff) / 255,
		G: float64(n>>8&0xff) / 255,
		B: float64(n&0xff) / 255,
	}, nil
}
