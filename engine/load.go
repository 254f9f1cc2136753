package engine

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/ByLCY/pdfml/barcode"
	"github.com/ByLCY/pdfml/binding"
	"github.com/ByLCY/pdfml/dsl"
	"github.com/ByLCY/pdfml/fonts"
	"github.com/ByLCY/pdfml/markup"
)

// LoadMarkup 读取已经渲染好的 markup 并驱动 opts.Surface 完成绘制。
func LoadMarkup(r io.Reader, format markup.Format, opts Options) (*Driver, error) {
	d, err := NewDriver(opts)
	if err != nil {
		return nil, err
	}
	switch format {
	case markup.FormatXML, "":
		err = markup.DecodeXML(r, d)
	case markup.FormatDSL:
		var doc *dsl.Document
		if doc, err = dsl.Parse(r); err != nil {
			return nil, fmt.Errorf("解析 DSL 失败: %w", err)
		}
		err = dsl.Walk(doc, d)
	default:
		return nil, fmt.Errorf("未知的 markup 格式 %q", format)
	}
	if err != nil {
		return nil, err
	}
	if !d.Done() {
		return nil, fmt.Errorf("%w: 文档缺少根元素或未闭合", ErrMalformed)
	}
	return d, nil
}

// RenderTemplate 先用 data 渲染模板，再把结果交给 LoadMarkup。
// 模板中可调用 fonts 与 barcodes 获取可用字体和条码类型。
func RenderTemplate(src string, data any, format markup.Format, opts Options) (*Driver, error) {
	text, err := binding.Render("pdfml", src, data, TemplateFuncs())
	if err != nil {
		return nil, err
	}
	opts.logger().Debug("模板渲染完成", "bytes", len(text))
	return LoadMarkup(strings.NewReader(text), format, opts)
}

// TemplateFuncs 返回模板可用的辅助函数。
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"fonts":    fonts.Names,
		"barcodes": barcode.Kinds,
	}
}
