package engine

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ByLCY/pdfml/barcode"
	"github.com/ByLCY/pdfml/layout"
)

// node 是元素打开时交给处理函数的上下文。
type node struct {
	attrs *layout.Attrs
	paint layout.Paint
	// estimate 是自动定位时光标预先下移的高度。
	estimate float64
}

type element struct {
	// root 只有 pdf 为 true，属性不经过 Resolver。
	root bool
	// kind 非空时由 Cursor.Place 补全几何属性。
	kind  layout.Kind
	open  func(d *Driver, n *node) error
	data  func(d *Driver, s string) error
	close func(d *Driver) error
}

var elements = map[string]element{
	"pdf":     {root: true},
	"page":    {close: (*Driver).closePage},
	"text":    {kind: layout.KindText, open: (*Driver).openText, data: (*Driver).textData, close: (*Driver).closeText},
	"line":    {kind: layout.KindLine, open: (*Driver).drawLine},
	"rect":    {kind: layout.KindRect, open: (*Driver).drawRect},
	"circle":  {kind: layout.KindCircle, open: (*Driver).drawCircle},
	"ellipse": {kind: layout.KindEllipse, open: (*Driver).drawEllipse},
	"image":   {kind: layout.KindImage, open: (*Driver).drawImage},
	"barcode": {kind: layout.KindBarcode, open: (*Driver).openBarcode, data: (*Driver).barcodeData, close: (*Driver).closeBarcode},
}

// nums 依次取出数值属性，缺少任一属性时返回 ErrResolve。
func nums(a *layout.Attrs, keys ...string) ([]float64, error) {
	out := make([]float64, len(keys))
	for i, k := range keys {
		v, ok := a.Num(k)
		if !ok {
			return nil, fmt.Errorf("%w: 缺少属性 %s", layout.ErrResolve, k)
		}
		out[i] = v
	}
	return out, nil
}

func (d *Driver) closePage() error {
	d.surface.NewPage()
	d.pages++
	d.cursor.Reset()
	d.log.Debug("换页", "page", d.pages, "cursor", d.cursor.Pos())
	return nil
}

func (d *Driver) openText(n *node) error {
	tb, err := layout.NewTextBlock(n.attrs, d.font, d.fontSize)
	if err != nil {
		return err
	}
	d.texts = append(d.texts, tb)
	return nil
}

func (d *Driver) textData(s string) error {
	d.texts[len(d.texts)-1].Append(s)
	return nil
}

func (d *Driver) closeText() error {
	tb := d.texts[len(d.texts)-1]
	d.texts = d.texts[:len(d.texts)-1]
	consumed, err := tb.Draw(d.surface)
	if err != nil {
		return err
	}
	d.cursor.Move(consumed, 0)
	d.log.Debug("文本块", "font", tb.Font, "size", tb.FontSize, "consumed", consumed, "cursor", d.cursor.Pos())
	return nil
}

func (d *Driver) drawLine(n *node) error {
	v, err := nums(n.attrs, "x1", "y1", "x2", "y2")
	if err != nil {
		return err
	}
	d.surface.Line(v[0], v[1], v[2], v[3])
	return nil
}

func (d *Driver) drawRect(n *node) error {
	v, err := nums(n.attrs, "x", "y", "width", "height")
	if err != nil {
		return err
	}
	d.surface.Rect(v[0], v[1], v[2], v[3], n.paint)
	return nil
}

func (d *Driver) drawCircle(n *node) error {
	v, err := nums(n.attrs, "x_cen", "y_cen", "r")
	if err != nil {
		return err
	}
	d.surface.Circle(v[0], v[1], v[2], n.paint)
	return nil
}

func (d *Driver) drawEllipse(n *node) error {
	v, err := nums(n.attrs, "x1", "y1", "x2", "y2")
	if err != nil {
		return err
	}
	d.surface.Ellipse(v[0], v[1], v[2], v[3], n.paint)
	return nil
}

func (d *Driver) drawImage(n *node) error {
	src, ok := n.attrs.String("src")
	if !ok || src == "" {
		return fmt.Errorf("%w: image 缺少 src", layout.ErrResolve)
	}
	if d.imageDir != "" && !filepath.IsAbs(src) {
		src = filepath.Join(d.imageDir, src)
	}
	v, err := nums(n.attrs, "x", "y")
	if err != nil {
		return err
	}
	w, wok := n.attrs.Num("width")
	h, hok := n.attrs.Num("height")
	if !wok || !hok {
		pw, ph, err := imageSize(src)
		if err != nil {
			return err
		}
		w, h = fitSize(pw, ph, w, h, wok, hok)
	}
	x, y := v[0], v[1]
	if n.attrs.Auto {
		y += n.estimate - h
		d.cursor.Move(h-n.estimate, 0)
	}
	return d.surface.Image(src, x, y, w, h)
}

// fitSize 按原始比例补全缺失的宽或高：都给出时各自缩放，只给一个时等比缩放，都未给出时使用原始尺寸。
func fitSize(natW, natH, w, h float64, hasW, hasH bool) (float64, float64) {
	switch {
	case hasW && hasH:
		return w, h
	case hasW:
		return w, natH * w / natW
	case hasH:
		return natW * h / natH, h
	default:
		return natW, natH
	}
}

type pendingBarcode struct {
	node
	content strings.Builder
}

func (d *Driver) openBarcode(n *node) error {
	d.barcodes = append(d.barcodes, &pendingBarcode{node: *n})
	return nil
}

func (d *Driver) barcodeData(s string) error {
	d.barcodes[len(d.barcodes)-1].content.WriteString(s)
	return nil
}

func (d *Driver) closeBarcode() error {
	pb := d.barcodes[len(d.barcodes)-1]
	d.barcodes = d.barcodes[:len(d.barcodes)-1]
	a := pb.attrs

	kind, ok := a.String("type")
	if !ok || kind == "" {
		return fmt.Errorf("%w: barcode 缺少 type", layout.ErrResolve)
	}
	sym, err := barcode.Encode(kind, strings.TrimSpace(pb.content.String()))
	if err != nil {
		if errors.Is(err, barcode.ErrUnknownType) {
			return fmt.Errorf("%w: %w", ErrUnsupported, err)
		}
		return err
	}
	barWidth, _ := a.Num("barWidth")
	barHeight, _ := a.Num("barHeight")
	natW, natH := sym.NaturalSize(barWidth, barHeight)
	w, wok := a.Num("width")
	h, hok := a.Num("height")
	w, h = fitSize(natW, natH, w, h, wok, hok)

	v, err := nums(a, "x", "y")
	if err != nil {
		return err
	}
	x, y := v[0], v[1]
	if a.Auto {
		y += pb.estimate - h
		d.cursor.Move(h-pb.estimate, 0)
	}

	mw, mh := w/float64(sym.Cols), h/float64(sym.Rows)
	fill := layout.Paint{Fill: true}
	for _, run := range sym.Runs() {
		top := y + h - float64(run.Row)*mh
		d.surface.Rect(x+float64(run.Start)*mw, top-mh, float64(run.Len)*mw, mh, fill)
	}
	d.log.Debug("条码", "type", sym.Type, "modules", sym.Cols*sym.Rows, "width", w, "height", h)
	return nil
}
