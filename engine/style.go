package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ByLCY/pdfml/layout"
)

// applyStyle 在 SaveState 之后修改绘图状态，返回形状的描边/填充方式。
// 同时给出 x 与 y 时先平移坐标系并把两者置零，使 rotate 以元素位置为中心。
func (d *Driver) applyStyle(name string, a *layout.Attrs) (layout.Paint, error) {
	paint := layout.Paint{Stroke: true}

	x, hasX := a.Num("x")
	y, hasY := a.Num("y")
	if hasX && hasY {
		d.surface.Translate(x, y)
		a.Set("x", 0)
		a.Set("y", 0)
	}

	rotate, err := a.Float("rotate", 0)
	if err != nil {
		return paint, err
	}
	if rotate != 0 {
		d.surface.Rotate(rotate)
	}

	if v, ok := a.Pop("stroke"); ok && v != "" {
		if v == "0" {
			paint.Stroke = false
		} else {
			c, err := layout.ParseColor(v)
			if err != nil {
				return paint, err
			}
			d.surface.SetStrokeColor(c)
		}
	}

	if v, ok := a.Pop("fill"); ok && v != "" {
		c, err := layout.ParseColor(v)
		if err != nil {
			return paint, err
		}
		d.surface.SetFillColor(c)
		// text 的 fill 只是文字颜色
		if name != string(layout.KindText) {
			paint.Fill = true
		}
	}

	if v, ok := a.Pop("dash"); ok && v != "" {
		pattern, err := parseDash(v)
		if err != nil {
			return paint, err
		}
		d.surface.SetDash(pattern)
	}

	if w, ok := a.Num("line"); ok && w != 0 {
		d.surface.SetLineWidth(w)
	}

	for _, key := range []string{"cap", "join"} {
		v, ok := a.Pop(key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 0 || n > 2 {
			return paint, fmt.Errorf("%w: %s=%q 应为 0-2", layout.ErrResolve, key, v)
		}
		if key == "cap" {
			d.surface.SetLineCap(n)
		} else {
			d.surface.SetLineJoin(n)
		}
	}
	return paint, nil
}

func parseDash(v string) ([]float64, error) {
	fields := strings.Split(v, ",")
	pattern := make([]float64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: dash=%q 不是数字列表", layout.ErrResolve, v)
		}
		pattern = append(pattern, n)
	}
	return pattern, nil
}
