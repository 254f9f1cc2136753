package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// geometryKeys 中的属性会乘以单位系数。
var geometryKeys = map[string]bool{
	"x": true, "y": true, "x1": true, "y1": true, "x2": true, "y2": true,
	"x_cen": true, "y_cen": true, "r": true, "height": true, "width": true,
	"line": true, "barWidth": true, "barHeight": true,
}

// 负坐标按页面宽/高回绕。
var (
	horizontalKeys = map[string]bool{"x": true, "x1": true, "x2": true, "x_cen": true}
	verticalKeys   = map[string]bool{"y": true, "y1": true, "y2": true, "y_cen": true}
)

// 符号关键字。
const (
	KeywordCenter = "center"
	KeywordCursor = "cursor"
)

// Resolver 把作者书写的属性值归一化为 pt：关键字替换、单位换算、负坐标回绕。
// 除页面尺寸与调用时传入的光标快照外不持有任何状态。
type Resolver struct {
	Scale  float64
	Width  float64
	Height float64
}

// NewResolver 根据单位与页面尺寸创建 Resolver。
func NewResolver(unit Unit, width, height float64) *Resolver {
	return &Resolver{Scale: unit.Points(), Width: width, Height: height}
}

// Resolve 返回新的 Attrs；cursor 是当前光标位置的快照。
func (r *Resolver) Resolve(raw map[string]string, cursor Point) (*Attrs, error) {
	a := NewAttrs(raw)
	for key, value := range raw {
		if !geometryKeys[key] {
			continue
		}
		v, substituted, err := r.keyword(key, value, cursor)
		if err != nil {
			return nil, err
		}
		if substituted {
			// 关键字已经是绝对坐标，不再乘单位，也不参与回绕。
			a.Set(key, v)
			if value == KeywordCursor {
				a.Pinned = true
			}
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: 属性 %s=%q 不是数字", ErrResolve, key, value)
		}
		a.Set(key, r.wrap(key, f*r.Scale))
	}
	return a, nil
}

func (r *Resolver) keyword(key, value string, cursor Point) (float64, bool, error) {
	value = strings.TrimSpace(value)
	if value != KeywordCenter && value != KeywordCursor {
		return 0, false, nil
	}
	switch key {
	case "x":
		if value == KeywordCenter {
			return r.Width / 2, true, nil
		}
		return cursor.X, true, nil
	case "y":
		if value == KeywordCenter {
			return r.Height / 2, true, nil
		}
		return cursor.Y, true, nil
	default:
		return 0, false, fmt.Errorf("%w: 关键字 %q 只能用于 x/y，不能用于 %s", ErrResolve, value, key)
	}
}

func (r *Resolver) wrap(key string, v float64) float64 {
	if v >= 0 {
		return v
	}
	switch {
	case horizontalKeys[key]:
		return r.Width + v
	case verticalKeys[key]:
		return r.Height + v
	default:
		return v
	}
}
