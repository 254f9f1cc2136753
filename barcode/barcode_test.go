package barcode

import (
	"errors"
	"testing"
)

func TestKindsEncodeSamples(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != len(symbologies) {
		t.Fatalf("expected %d kinds, got %d", len(symbologies), len(kinds))
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1].Name >= kinds[i].Name {
			t.Fatalf("kinds not sorted: %v", kinds)
		}
	}
	for _, k := range kinds {
		sym, err := Encode(k.Name, k.Sample)
		if err != nil {
			t.Fatalf("encode %s sample %q: %v", k.Name, k.Sample, err)
		}
		if sym.Cols == 0 || sym.Rows == 0 {
			t.Fatalf("%s produced empty matrix", k.Name)
		}
		if len(sym.Runs()) == 0 {
			t.Fatalf("%s produced no dark modules", k.Name)
		}
	}
}

func TestOneDimensionalShape(t *testing.T) {
	sym, err := Encode("Code128", "PDFML")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if sym.TwoD || sym.Rows != 1 {
		t.Fatalf("expected 1D symbol, got rows=%d twoD=%v", sym.Rows, sym.TwoD)
	}
	// code128 以深色起始符开头、以深色终止符结束
	if !sym.IsDark(0, 0) || !sym.IsDark(sym.Cols-1, 0) {
		t.Fatalf("expected dark guard modules at both ends")
	}
	w, h := sym.NaturalSize(0, 0)
	if w != float64(sym.Cols)*DefaultBarWidth || h != DefaultBarHeight {
		t.Fatalf("unexpected natural size %vx%v", w, h)
	}
	w, h = sym.NaturalSize(0.5, 20)
	if w != float64(sym.Cols)*0.5 || h != 20 {
		t.Fatalf("unexpected scaled size %vx%v", w, h)
	}
}

func TestQRIsSquare(t *testing.T) {
	sym, err := Encode("qrcode", "hello")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !sym.TwoD || sym.Cols != sym.Rows {
		t.Fatalf("expected square 2D symbol, got %dx%d", sym.Cols, sym.Rows)
	}
	w, h := sym.NaturalSize(2, 99)
	if w != h || w != float64(sym.Cols)*2 {
		t.Fatalf("unexpected natural size %vx%v", w, h)
	}
	// 定位图形左上角为深色
	if !sym.IsDark(0, 0) {
		t.Fatalf("expected finder pattern at origin")
	}
}

func TestRunsMergeAdjacentModules(t *testing.T) {
	s := &Symbol{Cols: 6, Rows: 1, Dark: []bool{true, true, false, true, false, true}}
	runs := s.Runs()
	want := []Run{{0, 0, 2}, {0, 3, 1}, {0, 5, 1}}
	if len(runs) != len(want) {
		t.Fatalf("unexpected runs %v", runs)
	}
	for i := range want {
		if runs[i] != want[i] {
			t.Fatalf("run %d = %v, want %v", i, runs[i], want[i])
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	if _, err := Encode("postnet", "123"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if _, err := Encode("ean", "abc"); err == nil {
		t.Fatalf("expected encoding error for non-numeric EAN")
	}
}
