package layout

import (
	"strconv"
	"unicode/utf8"
)

// Op 是一次绘图调用的记录。
type Op struct {
	Name string    `json:"op"`
	Args []float64 `json:"args,omitempty"`
	Text string    `json:"text,omitempty"`
}

// PlacedWord 是 TextOut 输出的词及其所在的行起点（文本运行坐标，未叠加变换）。
type PlacedWord struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Recorder 记录所有 Surface 调用，可选地转发给 Next。
// 没有 Next 时，文本宽度由 Measure 决定；Measure 为空时按每字符 0.5 * size 估算。
type Recorder struct {
	Next    Surface
	Measure func(s, font string, size float64) float64

	Ops   []Op
	Words []PlacedWord
	// Pages 是已经结束（调用过 NewPage）的页数。
	Pages int

	lineStart Point
}

var _ Surface = (*Recorder)(nil)

// NewRecorder 创建一个转发给 next 的 Recorder，next 可以为空。
func NewRecorder(next Surface) *Recorder {
	return &Recorder{Next: next}
}

func (r *Recorder) record(name, text string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args, Text: text})
}

// Named 返回指定名称的全部记录。
func (r *Recorder) Named(name string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) MeasureText(s, font string, size float64) (float64, error) {
	if r.Next != nil {
		return r.Next.MeasureText(s, font, size)
	}
	if r.Measure != nil {
		return r.Measure(s, font, size), nil
	}
	return float64(utf8.RuneCountInString(s)) * size * 0.5, nil
}

func (r *Recorder) Begin(width, height float64) error {
	r.record("begin", "", width, height)
	r.Pages = 0
	if r.Next != nil {
		return r.Next.Begin(width, height)
	}
	return nil
}

func (r *Recorder) SetInfo(meta DocumentMeta) {
	r.record("info", meta.Title)
	if r.Next != nil {
		r.Next.SetInfo(meta)
	}
}

func (r *Recorder) NewPage() {
	r.record("newPage", "")
	r.Pages++
	if r.Next != nil {
		r.Next.NewPage()
	}
}

func (r *Recorder) Translate(dx, dy float64) {
	r.record("translate", "", dx, dy)
	if r.Next != nil {
		r.Next.Translate(dx, dy)
	}
}

func (r *Recorder) Rotate(degrees float64) {
	r.record("rotate", "", degrees)
	if r.Next != nil {
		r.Next.Rotate(degrees)
	}
}

func (r *Recorder) SetStrokeColor(c Color) {
	r.record("strokeColor", "", c.R, c.G, c.B)
	if r.Next != nil {
		r.Next.SetStrokeColor(c)
	}
}

func (r *Recorder) SetFillColor(c Color) {
	r.record("fillColor", "", c.R, c.G, c.B)
	if r.Next != nil {
		r.Next.SetFillColor(c)
	}
}

func (r *Recorder) SetDash(pattern []float64) {
	r.record("dash", "", pattern...)
	if r.Next != nil {
		r.Next.SetDash(pattern)
	}
}

func (r *Recorder) SetLineWidth(w float64) {
	r.record("lineWidth", "", w)
	if r.Next != nil {
		r.Next.SetLineWidth(w)
	}
}

func (r *Recorder) SetLineCap(n int) {
	r.record("lineCap", "", float64(n))
	if r.Next != nil {
		r.Next.SetLineCap(n)
	}
}

func (r *Recorder) SetLineJoin(n int) {
	r.record("lineJoin", "", float64(n))
	if r.Next != nil {
		r.Next.SetLineJoin(n)
	}
}

func (r *Recorder) SaveState() {
	r.record("save", "")
	if r.Next != nil {
		r.Next.SaveState()
	}
}

func (r *Recorder) RestoreState() {
	r.record("restore", "")
	if r.Next != nil {
		r.Next.RestoreState()
	}
}

func (r *Recorder) SetFont(name string, size float64) error {
	r.record("font", name, size)
	if r.Next != nil {
		return r.Next.SetFont(name, size)
	}
	return nil
}

func (r *Recorder) BeginTextRun(origin Point) {
	r.record("beginText", "", origin.X, origin.Y)
	r.lineStart = origin
	if r.Next != nil {
		r.Next.BeginTextRun(origin)
	}
}

func (r *Recorder) TextOut(token string) {
	r.record("textOut", token, r.lineStart.X, r.lineStart.Y)
	r.Words = append(r.Words, PlacedWord{Text: token, X: r.lineStart.X, Y: r.lineStart.Y})
	if r.Next != nil {
		r.Next.TextOut(token)
	}
}

func (r *Recorder) MoveTextCursor(dx, dy float64) {
	r.record("moveText", "", dx, dy)
	r.lineStart.X += dx
	r.lineStart.Y -= dy
	if r.Next != nil {
		r.Next.MoveTextCursor(dx, dy)
	}
}

func (r *Recorder) DrawText() error {
	r.record("drawText", "")
	if r.Next != nil {
		return r.Next.DrawText()
	}
	return nil
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.record("line", "", x1, y1, x2, y2)
	if r.Next != nil {
		r.Next.Line(x1, y1, x2, y2)
	}
}

func (r *Recorder) Rect(x, y, w, h float64, paint Paint) {
	r.record("rect", paintString(paint), x, y, w, h)
	if r.Next != nil {
		r.Next.Rect(x, y, w, h, paint)
	}
}

func (r *Recorder) Circle(cx, cy, radius float64, paint Paint) {
	r.record("circle", paintString(paint), cx, cy, radius)
	if r.Next != nil {
		r.Next.Circle(cx, cy, radius, paint)
	}
}

func (r *Recorder) Ellipse(x1, y1, x2, y2 float64, paint Paint) {
	r.record("ellipse", paintString(paint), x1, y1, x2, y2)
	if r.Next != nil {
		r.Next.Ellipse(x1, y1, x2, y2, paint)
	}
}

func (r *Recorder) Image(src string, x, y, w, h float64) error {
	r.record("image", src, x, y, w, h)
	if r.Next != nil {
		return r.Next.Image(src, x, y, w, h)
	}
	return nil
}

func paintString(p Paint) string {
	return "stroke=" + strconv.FormatBool(p.Stroke) + " fill=" + strconv.FormatBool(p.Fill)
}
