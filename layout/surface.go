package layout

// Measurer 提供文本宽度度量。对固定的 (font, size) 结果必须确定且可重复。
type Measurer interface {
	MeasureText(s, font string, size float64) (float64, error)
}

// Surface 是布局核心依赖的二维绘图能力，坐标单位为 pt，原点在页面左下角。
//
// 文本按"行起点"模型绘制：TextOut 在当前行起点绘制一个词但不移动行起点，
// MoveTextCursor 相对当前行起点平移（dy 为正表示向下）。
type Surface interface {
	Measurer

	// Begin 打开文档并创建第一页。
	Begin(width, height float64) error
	SetInfo(meta DocumentMeta)
	NewPage()

	Translate(dx, dy float64)
	Rotate(degrees float64)
	SetStrokeColor(c Color)
	SetFillColor(c Color)
	SetDash(pattern []float64)
	SetLineWidth(w float64)
	SetLineCap(n int)
	SetLineJoin(n int)
	SaveState()
	RestoreState()

	SetFont(name string, size float64) error
	BeginTextRun(origin Point)
	TextOut(token string)
	MoveTextCursor(dx, dy float64)
	DrawText() error

	Line(x1, y1, x2, y2 float64)
	Rect(x, y, w, h float64, paint Paint)
	Circle(cx, cy, r float64, paint Paint)
	Ellipse(x1, y1, x2, y2 float64, paint Paint)
	Image(src string, x, y, w, h float64) error
}
