package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/ByLCY/pdfml/fonts"
	"github.com/ByLCY/pdfml/layout"
	"github.com/ByLCY/pdfml/renderer"
)

// defaultLineWidth 与 PDF 默认线宽一致（pt）。
const defaultLineWidth = 1.0

// Renderer 通过 github.com/tdewolff/canvas 实现 layout.Surface，输出 PDF。
// 布局坐标为 pt、原点在左下角；canvas 使用 mm，边界处统一换算。
type Renderer struct {
	fontDir   string
	fontBlobs map[string][]byte

	families map[string]*canvas.FontFamily

	buf     bytes.Buffer
	writer  *pdf.PDF
	width   float64
	height  float64
	page    *canvas.Canvas
	ctx     *canvas.Context
	pending bool // 上一页已输出，下一次绘制前需要开新页
	pages   int
	meta    layout.DocumentMeta

	state drawState
	stack []drawState

	lineStart layout.Point
	run       []textOut
}

var _ renderer.Renderer = (*Renderer)(nil)

// drawState 镜像 ctx.Push/Pop 保存的状态中文本绘制需要的部分。
type drawState struct {
	fill     color.Color
	font     string
	fontSize float64
}

type textOut struct {
	text string
	at   layout.Point
}

// Options configures the canvas renderer.
type Options struct {
	// FontDir 中的 <name>.ttf / <name>.otf 可以在 font 属性中直接引用。
	FontDir string
	Fonts   map[string]Resource // 按名称注入的字体，优先于内置字体
}

// Resource can be provided either by Bytes or by Path.
type Resource struct {
	Bytes []byte
	Path  string
}

// NewRenderer creates a renderer that also searches fontDir for fonts.
func NewRenderer(fontDir string) *Renderer { return NewRendererWithOptions(Options{FontDir: fontDir}) }

// NewRendererWithOptions creates a renderer with injected font resources.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{
		fontDir:   opts.FontDir,
		fontBlobs: map[string][]byte{},
		families:  map[string]*canvas.FontFamily{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			r.fontBlobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			data, _ := os.ReadFile(res.Path) // 读取失败时在使用该字体时报错
			if len(data) > 0 {
				r.fontBlobs[name] = data
			}
		}
	}
	return r
}

// Begin 创建 PDF writer 与第一页。
func (r *Renderer) Begin(width, height float64) error {
	if r.writer != nil {
		return fmt.Errorf("文档已经开始")
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("页面尺寸无效: %gx%g", width, height)
	}
	r.width, r.height = width, height
	r.writer = pdf.New(&r.buf, toMm(width), toMm(height), nil)
	r.startPage()
	return nil
}

func (r *Renderer) SetInfo(meta layout.DocumentMeta) { r.meta = meta }

// NewPage 输出当前页。下一页在首次绘制时才创建，避免文档末尾多出空白页。
func (r *Renderer) NewPage() {
	r.ensurePage()
	r.page.RenderTo(r.writer)
	r.pages++
	r.pending = true
}

// Render 输出尚未结束的页面并关闭 writer，返回 PDF 字节。
func (r *Renderer) Render() ([]byte, error) {
	if r.writer == nil {
		return nil, fmt.Errorf("缺少可渲染的页面")
	}
	if !r.pending {
		r.page.RenderTo(r.writer)
		r.pages++
		r.pending = true
	}
	r.applyMeta()
	if err := r.writer.Close(); err != nil {
		return nil, fmt.Errorf("写入 PDF 失败: %w", err)
	}
	return r.buf.Bytes(), nil
}

func (r *Renderer) applyMeta() {
	keywords := strings.Join(r.meta.Keywords, ", ")
	r.writer.SetInfo(r.meta.Title, r.meta.Subject, keywords, r.meta.Author, r.meta.Creator)
}

func (r *Renderer) startPage() {
	r.page = canvas.New(toMm(r.width), toMm(r.height))
	r.ctx = canvas.NewContext(r.page)
	r.ctx.SetFillColor(canvas.Black)
	r.ctx.SetStrokeColor(canvas.Black)
	r.ctx.SetStrokeWidth(toMm(defaultLineWidth))
	r.state = drawState{fill: canvas.Black, font: layout.DefaultFont, fontSize: layout.DefaultFontSize}
	r.stack = r.stack[:0]
}

func (r *Renderer) ensurePage() {
	if !r.pending {
		return
	}
	r.writer.NewPage(toMm(r.width), toMm(r.height))
	r.startPage()
	r.pending = false
}

func (r *Renderer) Translate(dx, dy float64) {
	r.ensurePage()
	r.ctx.Translate(toMm(dx), toMm(dy))
}

func (r *Renderer) Rotate(degrees float64) {
	r.ensurePage()
	r.ctx.Rotate(degrees)
}

func (r *Renderer) SetStrokeColor(c layout.Color) {
	r.ensurePage()
	r.ctx.SetStrokeColor(colorFromLayout(c))
}

func (r *Renderer) SetFillColor(c layout.Color) {
	r.ensurePage()
	col := colorFromLayout(c)
	r.ctx.SetFillColor(col)
	r.state.fill = col
}

func (r *Renderer) SetDash(pattern []float64) {
	r.ensurePage()
	dashes := make([]float64, len(pattern))
	for i, d := range pattern {
		dashes[i] = toMm(d)
	}
	r.ctx.SetDashes(0, dashes...)
}

func (r *Renderer) SetLineWidth(w float64) {
	r.ensurePage()
	r.ctx.SetStrokeWidth(toMm(w))
}

// SetLineCap 使用 PDF 的编号：0 平头，1 圆头，2 方头。
func (r *Renderer) SetLineCap(n int) {
	r.ensurePage()
	switch n {
	case 1:
		r.ctx.SetStrokeCapper(canvas.RoundCap)
	case 2:
		r.ctx.SetStrokeCapper(canvas.SquareCap)
	default:
		r.ctx.SetStrokeCapper(canvas.ButtCap)
	}
}

// SetLineJoin 使用 PDF 的编号：0 尖角，1 圆角，2 斜角。
func (r *Renderer) SetLineJoin(n int) {
	r.ensurePage()
	switch n {
	case 1:
		r.ctx.SetStrokeJoiner(canvas.RoundJoin)
	case 2:
		r.ctx.SetStrokeJoiner(canvas.BevelJoin)
	default:
		r.ctx.SetStrokeJoiner(canvas.MiterJoin)
	}
}

func (r *Renderer) SaveState() {
	r.ensurePage()
	r.ctx.Push()
	r.stack = append(r.stack, r.state)
}

func (r *Renderer) RestoreState() {
	r.ensurePage()
	if len(r.stack) == 0 {
		return
	}
	r.ctx.Pop()
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

// SetFont 校验字体可用后记录为当前字体。
func (r *Renderer) SetFont(name string, size float64) error {
	r.ensurePage()
	if _, err := r.fontFamily(name); err != nil {
		return err
	}
	r.state.font, r.state.fontSize = name, size
	return nil
}

func (r *Renderer) BeginTextRun(origin layout.Point) {
	r.lineStart = origin
	r.run = r.run[:0]
}

func (r *Renderer) TextOut(token string) {
	r.run = append(r.run, textOut{text: token, at: r.lineStart})
}

func (r *Renderer) MoveTextCursor(dx, dy float64) {
	r.lineStart.X += dx
	r.lineStart.Y -= dy
}

// DrawText 以当前字体与填充色在各词的行起点基线处绘制。
func (r *Renderer) DrawText() error {
	r.ensurePage()
	face, err := r.fontFace(r.state.font, r.state.fontSize, r.state.fill)
	if err != nil {
		return err
	}
	for _, w := range r.run {
		r.ctx.DrawText(toMm(w.at.X), toMm(w.at.Y), canvas.NewTextLine(face, w.text, canvas.Left))
	}
	r.run = r.run[:0]
	return nil
}

// MeasureText 返回文本宽度（pt）。
func (r *Renderer) MeasureText(s, font string, size float64) (float64, error) {
	face, err := r.fontFace(font, size, canvas.Black)
	if err != nil {
		return 0, err
	}
	return toPt(face.TextWidth(s)), nil
}

func (r *Renderer) Line(x1, y1, x2, y2 float64) {
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(toMm(x2-x1), toMm(y2-y1))
	r.drawShape(toMm(x1), toMm(y1), p, layout.Paint{Stroke: true})
}

func (r *Renderer) Rect(x, y, w, h float64, paint layout.Paint) {
	r.drawShape(toMm(x), toMm(y), canvas.Rectangle(toMm(w), toMm(h)), paint)
}

func (r *Renderer) Circle(cx, cy, radius float64, paint layout.Paint) {
	r.drawShape(toMm(cx), toMm(cy), canvas.Circle(toMm(radius)), paint)
}

// Ellipse 绘制内切于 (x1,y1)-(x2,y2) 矩形的椭圆。
func (r *Renderer) Ellipse(x1, y1, x2, y2 float64, paint layout.Paint) {
	rx, ry := abs(x2-x1)/2, abs(y2-y1)/2
	r.drawShape(toMm((x1+x2)/2), toMm((y1+y2)/2), canvas.Ellipse(toMm(rx), toMm(ry)), paint)
}

// drawShape 只在本次绘制中关闭描边或填充，不影响后续元素。
func (r *Renderer) drawShape(x, y float64, p *canvas.Path, paint layout.Paint) {
	r.ensurePage()
	r.ctx.Push()
	if !paint.Fill {
		r.ctx.SetFillColor(canvas.Transparent)
	}
	if !paint.Stroke {
		r.ctx.SetStrokeColor(canvas.Transparent)
	}
	r.ctx.DrawPath(x, y, p)
	r.ctx.Pop()
}

// Image 把图片缩放到 w×h（pt）绘制在 (x,y)。
func (r *Renderer) Image(src string, x, y, w, h float64) error {
	r.ensurePage()
	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("读取图片 %s 失败: %w", src, err)
	}
	img, _, err := image.Decode(file)
	file.Close()
	if err != nil {
		return fmt.Errorf("解码图片 %s 失败: %w", src, err)
	}
	px, py := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	if px <= 0 || py <= 0 || w <= 0 || h <= 0 {
		return fmt.Errorf("图片 %s 尺寸无效", src)
	}
	dpmm := px / toMm(w)
	// DPMM 只能等比缩放，纵向比例差异用坐标缩放补偿
	sy := (h / w) * (px / py)
	r.ctx.Push()
	r.ctx.Translate(toMm(x), toMm(y))
	r.ctx.Scale(1, sy)
	r.ctx.DrawImage(0, 0, img, canvas.DPMM(dpmm))
	r.ctx.Pop()
	return nil
}

func (r *Renderer) fontFace(name string, size float64, col color.Color) (*canvas.FontFace, error) {
	family, err := r.fontFamily(name)
	if err != nil {
		return nil, err
	}
	return family.Face(size, col, canvas.FontRegular, canvas.FontNormal), nil
}

// fontFamily 按名称加载并缓存字体：注入的字体优先，其次是内置字体与 FontDir。
func (r *Renderer) fontFamily(name string) (*canvas.FontFamily, error) {
	if family, ok := r.families[name]; ok {
		return family, nil
	}
	data, ok := r.fontBlobs[name]
	if !ok {
		var err error
		if data, err = fonts.Load(name, r.fontDir); err != nil {
			return nil, err
		}
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	r.families[name] = family
	return family, nil
}

func colorFromLayout(c layout.Color) color.Color {
	return canvas.RGBA(c.R, c.G, c.B, 1.0)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
