package layout

import (
	"errors"
	"testing"
)

func letterResolver() *Resolver {
	return NewResolver(UnitIN, 612, 792)
}

// TestResolveNegativeWraparound 验证负坐标按页面尺寸回绕：x=-1in → 540。
func TestResolveNegativeWraparound(t *testing.T) {
	a, err := letterResolver().Resolve(map[string]string{
		"x": "-1", "y": "-0.5", "x2": "-2", "y_cen": "-1", "width": "-1",
	}, Point{})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	checks := map[string]float64{"x": 540, "y": 756, "x2": 468, "y_cen": 720, "width": -72}
	for k, want := range checks {
		got, ok := a.Num(k)
		if !ok || !eq(got, want) {
			t.Fatalf("%s 期望 %g，实际 %g (ok=%v)", k, want, got, ok)
		}
	}
}

func TestResolveScalesOnlyGeometry(t *testing.T) {
	a, err := letterResolver().Resolve(map[string]string{
		"width": "2", "line": "0.5", "barHeight": "1", "fontsize": "14", "align": "justify",
	}, Point{})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if w, _ := a.Num("width"); !eq(w, 144) {
		t.Fatalf("width 应乘以 72，实际 %g", w)
	}
	if l, _ := a.Num("line"); !eq(l, 36) {
		t.Fatalf("line 应乘以 72，实际 %g", l)
	}
	if bh, _ := a.Num("barHeight"); !eq(bh, 72) {
		t.Fatalf("barHeight 应乘以 72，实际 %g", bh)
	}
	if _, ok := a.Num("fontsize"); ok {
		t.Fatalf("fontsize 不应被当作几何属性")
	}
	if fs, err := a.Float("fontsize", 0); err != nil || !eq(fs, 14) {
		t.Fatalf("fontsize 应原样保留并可转为数字: %g err=%v", fs, err)
	}
	if v := a.Get("align", ""); v != "justify" {
		t.Fatalf("align 应原样透传，实际 %q", v)
	}
}

func TestResolveKeywords(t *testing.T) {
	cursor := Point{X: 72, Y: 500}
	a, err := letterResolver().Resolve(map[string]string{"x": "center", "y": "cursor"}, cursor)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if x, _ := a.Num("x"); !eq(x, 306) {
		t.Fatalf("x=center 期望 306，实际 %g", x)
	}
	if y, _ := a.Num("y"); !eq(y, 500) {
		t.Fatalf("y=cursor 期望光标位置 500（不再乘单位），实际 %g", y)
	}
	if !a.Pinned {
		t.Fatalf("cursor 关键字应标记为不自动定位")
	}

	b, err := letterResolver().Resolve(map[string]string{"y": "center"}, cursor)
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if y, _ := b.Num("y"); !eq(y, 396) || b.Pinned {
		t.Fatalf("y=center 期望 396 且不标记 Pinned，实际 %g pinned=%v", y, b.Pinned)
	}
}

func TestResolveErrors(t *testing.T) {
	cases := []map[string]string{
		{"x": "abc"},
		{"r": "center"},
		{"height": ""},
	}
	for _, raw := range cases {
		if _, err := letterResolver().Resolve(raw, Point{}); !errors.Is(err, ErrResolve) {
			t.Fatalf("%v 应返回 ErrResolve，实际 %v", raw, err)
		}
	}
}
