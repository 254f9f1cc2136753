package engine

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ByLCY/pdfml/layout"
	"github.com/ByLCY/pdfml/markup"
)

// Driver 按文档顺序消费 markup 通知，依次调用 Resolver、Cursor 与绘图接口。
// 一个 Driver 只生成一份文档，不能并发使用。
type Driver struct {
	surface  layout.Surface
	imageDir string
	log      *slog.Logger

	resolver *layout.Resolver
	cursor   *layout.Cursor
	font     string
	fontSize float64

	// depth 从 -1 开始：pdf 为 0，page 为 1，其下元素打开时保存绘图状态。
	depth    int
	tags     []string
	texts    []*layout.TextBlock
	barcodes []*pendingBarcode
	pages    int
	done     bool
}

var _ markup.Handler = (*Driver)(nil)

// NewDriver 创建驱动，opts.Surface 必须非空。
func NewDriver(opts Options) (*Driver, error) {
	if opts.Surface == nil {
		return nil, fmt.Errorf("未指定绘图 surface")
	}
	return &Driver{
		surface:  opts.Surface,
		imageDir: opts.ImageDir,
		log:      opts.logger(),
		depth:    -1,
	}, nil
}

// Pages 返回已结束的页数。
func (d *Driver) Pages() int { return d.pages }

// Done 报告根元素 pdf 是否已经关闭。
func (d *Driver) Done() bool { return d.done }

// StartElement 实现 markup.Handler。
func (d *Driver) StartElement(name string, attrs []markup.Attr) error {
	if d.done {
		return fmt.Errorf("%w: pdf 关闭后出现元素 %s", ErrMalformed, name)
	}
	el, ok := elements[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
	raw := markup.AttrMap(attrs)
	if el.root {
		if d.resolver != nil {
			return fmt.Errorf("%w: pdf 只能作为根元素出现一次", ErrMalformed)
		}
		if err := d.openDocument(raw); err != nil {
			return err
		}
		d.tags = append(d.tags, name)
		d.depth++
		return nil
	}
	if d.resolver == nil {
		return fmt.Errorf("%w: 元素 %s 出现在 pdf 之前", ErrMalformed, name)
	}

	a, err := d.resolver.Resolve(raw, d.cursor.Pos())
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	before := d.cursor.Pos().Y
	if el.kind != "" {
		if a, err = d.cursor.Place(el.kind, a); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	estimate := before - d.cursor.Pos().Y

	d.tags = append(d.tags, name)
	paint := layout.Paint{Stroke: true}
	if d.depth > 0 {
		d.surface.SaveState()
		if paint, err = d.applyStyle(name, a); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	d.depth++

	if el.open == nil {
		return nil
	}
	if err := el.open(d, &node{attrs: a, paint: paint, estimate: estimate}); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// CharData 实现 markup.Handler。元素之间的空白被忽略。
func (d *Driver) CharData(data string) error {
	if len(d.tags) == 0 {
		if strings.TrimSpace(data) != "" {
			return fmt.Errorf("%w: 元素之外出现文本 %q", ErrMalformed, data)
		}
		return nil
	}
	el := elements[d.tags[len(d.tags)-1]]
	if el.data == nil {
		return nil
	}
	return el.data(d, data)
}

// EndElement 实现 markup.Handler。
func (d *Driver) EndElement(name string) error {
	if len(d.tags) == 0 || d.tags[len(d.tags)-1] != name {
		return fmt.Errorf("%w: 意外的结束标签 %s", ErrMalformed, name)
	}
	if el := elements[name]; el.close != nil {
		if err := el.close(d); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	d.tags = d.tags[:len(d.tags)-1]
	if d.depth > 1 {
		d.surface.RestoreState()
	}
	d.depth--
	if len(d.tags) == 0 {
		d.done = true
		d.log.Debug("文档结束", "pages", d.pages)
	}
	return nil
}

func (d *Driver) openDocument(raw map[string]string) error {
	a := layout.NewAttrs(raw)
	unit, err := layout.ParseUnit(a.Get("unit", "inch"))
	if err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	scale := unit.Points()
	width, height, err := layout.ResolvePageSize(a.Get("pagesize", ""), a.Get("orientation", ""))
	if err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	if width, err = a.Float("width", width/scale); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	if height, err = a.Float("height", height/scale); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	width, height = width*scale, height*scale

	margin, err := layout.ParseMargin(a.Get("margin", ""), scale)
	if err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	d.font = a.Get("font", layout.DefaultFont)
	if d.fontSize, err = a.Float("fontsize", layout.DefaultFontSize); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}

	frame := layout.Frame{Width: width, Height: height, Margin: margin}
	d.resolver = layout.NewResolver(unit, width, height)
	d.cursor = layout.NewCursor(frame)
	d.cursor.FontSize = d.fontSize

	if err := d.surface.Begin(width, height); err != nil {
		return fmt.Errorf("pdf: %w", err)
	}
	d.surface.SetInfo(documentMeta(a))
	d.log.Debug("文档开始",
		"width", width, "height", height,
		"unit", layout.UnitToString(unit), "margin", margin)
	return nil
}

func documentMeta(a *layout.Attrs) layout.DocumentMeta {
	meta := layout.DocumentMeta{
		Title:   a.Get("title", ""),
		Author:  a.Get("author", ""),
		Subject: a.Get("subject", ""),
		Creator: a.Get("creator", "pdfml"),
	}
	for _, kw := range strings.Split(a.Get("keywords", ""), ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			meta.Keywords = append(meta.Keywords, kw)
		}
	}
	return meta
}
