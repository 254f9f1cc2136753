package binding

import (
	"strings"
	"testing"
	"text/template"
)

func TestInterpolate(t *testing.T) {
	data := map[string]any{
		"user":  map[string]any{"name": "Ada"},
		"items": []any{map[string]any{"sku": "A-1"}, map[string]any{"sku": "B-2"}},
	}
	cases := map[string]string{
		"Hello ${user.name}":       "Hello Ada",
		"${items[1].sku}":          "B-2",
		"${ items[0].sku }!":       "A-1!",
		"missing ${user.email}":    "missing ${user.email}",
		"out of range ${items[5]}": "out of range ${items[5]}",
		"${}":                      "${}",
	}
	for in, want := range cases {
		if got := Interpolate(in, data); got != want {
			t.Fatalf("Interpolate(%q) = %q, want %q", in, got, want)
		}
	}
	if got := Interpolate("${x}", nil); got != "${x}" {
		t.Fatalf("nil data should keep placeholder, got %q", got)
	}
}

func TestRenderTemplateThenInterpolate(t *testing.T) {
	data := map[string]any{
		"rows": []any{"a", "b"},
		"who":  "Bob",
	}
	src := `{{range .rows}}<text>{{.}}</text>{{end}}<text>${who}</text>`
	out, err := Render("doc", src, data, nil)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	want := `<text>a</text><text>b</text><text>Bob</text>`
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestRenderFuncs(t *testing.T) {
	funcs := template.FuncMap{
		"fonts": func() []string { return []string{"Helvetica", "Courier"} },
	}
	out, err := Render("doc", `{{range fonts}}{{.}};{{end}}`, nil, funcs)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if out != "Helvetica;Courier;" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render("bad", "{{.x", nil, nil); err == nil || !strings.Contains(err.Error(), "解析模板") {
		t.Fatalf("expected parse error, got %v", err)
	}
	if _, err := Render("bad", "{{call .f}}", map[string]any{"f": 3}, nil); err == nil {
		t.Fatalf("expected execution error")
	}
}

type invoice struct {
	Number string
	Lines  []*line
	secret string
}

type line struct {
	SKU string
	Qty int
}

func TestLookupStructs(t *testing.T) {
	inv := &invoice{Number: "INV-7", Lines: []*line{{SKU: "A", Qty: 2}}, secret: "x"}
	if got := Interpolate("${Number}/${Lines[0].SKU}x${Lines[0].Qty}", inv); got != "INV-7/Ax2" {
		t.Fatalf("unexpected interpolation %q", got)
	}
	if _, ok := Lookup(inv, "secret"); ok {
		t.Fatalf("unexported fields must not resolve")
	}
	if _, ok := Lookup(inv, "Lines[x]"); ok {
		t.Fatalf("non-numeric index must not resolve")
	}
	if v, ok := Lookup(map[string]string{"a": "b"}, "a"); !ok || v != "b" {
		t.Fatalf("typed map lookup failed: %v %v", v, ok)
	}
}
