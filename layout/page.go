package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// pagePresets 以 pt 为单位记录常用纸张（纵向）。
var pagePresets = map[string][2]float64{
	"LETTER":          {612, 792},
	"LEGAL":           {612, 1008},
	"TABLOID":         {792, 1224},
	"LEDGER":          {1224, 792},
	"ELEVENSEVENTEEN": {792, 1224},
	"HALFLETTER":      {396, 612},
	"JUNIORLEGAL":     {360, 576},
}

func init() {
	a := [][2]float64{{841, 1189}, {594, 841}, {420, 594}, {297, 420}, {210, 297}, {148, 210}, {105, 148}, {74, 105}, {52, 74}, {37, 52}, {26, 37}}
	b := [][2]float64{{1000, 1414}, {707, 1000}, {500, 707}, {353, 500}, {250, 353}, {176, 250}, {125, 176}, {88, 125}, {62, 88}, {44, 62}, {31, 44}}
	for i := range a {
		pagePresets["A"+strconv.Itoa(i)] = [2]float64{a[i][0] * MmToPt, a[i][1] * MmToPt}
		pagePresets["B"+strconv.Itoa(i)] = [2]float64{b[i][0] * MmToPt, b[i][1] * MmToPt}
	}
}

// ResolvePageSize 根据纸张名称与方向返回页面宽高（pt）。
func ResolvePageSize(name, orientation string) (float64, float64, error) {
	if name == "" {
		name = "letter"
	}
	base, ok := pagePresets[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, 0, fmt.Errorf("%w: 暂不支持的纸张尺寸 %s", ErrResolve, name)
	}
	width, height := base[0], base[1]
	switch strings.ToLower(strings.TrimSpace(orientation)) {
	case "":
	case "portrait":
		if width > height {
			width, height = height, width
		}
	case "landscape":
		if width < height {
			width, height = height, width
		}
	default:
		return 0, 0, fmt.Errorf("%w: 未知的页面方向 %s", ErrResolve, orientation)
	}
	return width, height, nil
}

// ParseMargin 解析 margin 简写并乘以单位系数：
// 1 个值：四边相同；2 个值：上下、左右；4 个值：上、右、下、左。
// 分隔符可以是空格或逗号。空字符串返回四边各 1 inch。
func ParseMargin(value string, scale float64) (Margin, error) {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return Margin{Top: 72, Right: 72, Bottom: 72, Left: 72}, nil
	}
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Margin{}, fmt.Errorf("%w: margin 值 %q 不是数字", ErrResolve, f)
		}
		vals = append(vals, v*scale)
	}
	switch len(vals) {
	case 1:
		v := vals[0]
		return Margin{Top: v, Right: v, Bottom: v, Left: v}, nil
	case 2:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 4:
		return Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	default:
		return Margin{}, fmt.Errorf("%w: margin 需要 1、2 或 4 个值，实际 %d 个", ErrResolve, len(vals))
	}
}
