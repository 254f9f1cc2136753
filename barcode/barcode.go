// Package barcode 把条码内容编码为模块矩阵，供绘制层按矩形逐段绘制。
package barcode

import (
	"errors"
	"fmt"
	"image"
	"sort"
	"strings"

	bc "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/codabar"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/code93"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/qr"
	"github.com/boombuler/barcode/twooffive"
)

// ErrUnknownType 表示不支持的条码类型。
var ErrUnknownType = errors.New("未知条码类型")

// 一维条码的默认模块宽度与条高（pt），二维码默认模块边长（pt）。
const (
	DefaultBarWidth  = 1.0
	DefaultBarHeight = 36.0
	DefaultModule2D  = 3.0
)

type symbology struct {
	encode func(content string) (bc.Barcode, error)
	twoD   bool
	sample string
}

var symbologies = map[string]symbology{
	"code128": {encode: func(c string) (bc.Barcode, error) { return code128.Encode(c) }, sample: "0123456789"},
	"code39":  {encode: func(c string) (bc.Barcode, error) { return code39.Encode(c, false, true) }, sample: "0123456789"},
	"code93":  {encode: func(c string) (bc.Barcode, error) { return code93.Encode(c, false, true) }, sample: "0123456789"},
	"ean":     {encode: func(c string) (bc.Barcode, error) { return ean.Encode(c) }, sample: "590123412345"},
	"i2of5":   {encode: func(c string) (bc.Barcode, error) { return twooffive.Encode(c, true) }, sample: "0123456789"},
	"2of5":    {encode: func(c string) (bc.Barcode, error) { return twooffive.Encode(c, false) }, sample: "0123456789"},
	"codabar": {encode: func(c string) (bc.Barcode, error) { return codabar.Encode(c) }, sample: "A0123456789B"},
	"qr": {encode: func(c string) (bc.Barcode, error) { return qr.Encode(c, qr.M, qr.Auto) },
		twoD: true, sample: "https://github.com/ByLCY/pdfml"},
	"datamatrix": {encode: func(c string) (bc.Barcode, error) { return datamatrix.Encode(c) }, twoD: true, sample: "0123456789"},
}

// 常见别名，兼容 reportlab 风格的类型名。
var aliases = map[string]string{
	"code128auto": "code128",
	"standard39":  "code39",
	"extended39":  "code39",
	"standard93":  "code93",
	"extended93":  "code93",
	"ean13":       "ean",
	"ean8":        "ean",
	"interleaved": "i2of5",
	"qrcode":      "qr",
}

// Symbol 是编码后的模块矩阵，Dark 按行优先存储，Rows 为 1 时表示一维条码。
type Symbol struct {
	Type    string
	Content string
	Cols    int
	Rows    int
	TwoD    bool
	Dark    []bool
}

// IsDark 报告 (col,row) 处模块是否为深色，row 0 为顶行。
func (s *Symbol) IsDark(col, row int) bool {
	if col < 0 || row < 0 || col >= s.Cols || row >= s.Rows {
		return false
	}
	return s.Dark[row*s.Cols+col]
}

// Run 表示同一行中连续的深色模块。
type Run struct {
	Row   int
	Start int
	Len   int
}

// Runs 把深色模块合并为水平段，减少绘制调用。
func (s *Symbol) Runs() []Run {
	var runs []Run
	for row := 0; row < s.Rows; row++ {
		start := -1
		for col := 0; col <= s.Cols; col++ {
			dark := col < s.Cols && s.IsDark(col, row)
			switch {
			case dark && start < 0:
				start = col
			case !dark && start >= 0:
				runs = append(runs, Run{Row: row, Start: start, Len: col - start})
				start = -1
			}
		}
	}
	return runs
}

// NaturalSize 返回未缩放时的宽高（pt）。barWidth/barHeight 为 0 时使用默认值；
// 二维码的模块高度等于模块宽度，忽略 barHeight。
func (s *Symbol) NaturalSize(barWidth, barHeight float64) (float64, float64) {
	if s.TwoD {
		if barWidth <= 0 {
			barWidth = DefaultModule2D
		}
		return float64(s.Cols) * barWidth, float64(s.Rows) * barWidth
	}
	if barWidth <= 0 {
		barWidth = DefaultBarWidth
	}
	if barHeight <= 0 {
		barHeight = DefaultBarHeight
	}
	return float64(s.Cols) * barWidth, barHeight
}

// Encode 按类型名（不区分大小写）编码内容。
func Encode(kind, content string) (*Symbol, error) {
	name := normalize(kind)
	sym, ok := symbologies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, kind)
	}
	code, err := sym.encode(content)
	if err != nil {
		return nil, fmt.Errorf("编码 %s 条码失败: %w", name, err)
	}
	return fromImage(name, content, sym.twoD, code), nil
}

func normalize(kind string) string {
	name := strings.ToLower(strings.TrimSpace(kind))
	if alias, ok := aliases[name]; ok {
		return alias
	}
	return name
}

func fromImage(name, content string, twoD bool, img image.Image) *Symbol {
	b := img.Bounds()
	rows := b.Dy()
	if !twoD {
		rows = 1
	}
	s := &Symbol{
		Type:    name,
		Content: content,
		Cols:    b.Dx(),
		Rows:    rows,
		TwoD:    twoD,
		Dark:    make([]bool, b.Dx()*rows),
	}
	for y := 0; y < rows; y++ {
		for x := 0; x < b.Dx(); x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			s.Dark[y*s.Cols+x] = r+g+bl < 3*0x8000
		}
	}
	return s
}

// Kind 描述一种可用的条码类型及其示例内容。
type Kind struct {
	Name   string
	Sample string
}

// Kinds 返回按名称排序的全部条码类型。
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(symbologies))
	for name, sym := range symbologies {
		kinds = append(kinds, Kind{Name: name, Sample: sym.sample})
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].Name < kinds[j].Name })
	return kinds
}
