package layout

// Kind 是元素的类别，决定光标为其补全哪些几何属性。
type Kind string

const (
	KindText    Kind = "text"
	KindLine    Kind = "line"
	KindBarcode Kind = "barcode"
	KindImage   Kind = "image"
	KindCircle  Kind = "circle"
	KindRect    Kind = "rect"
	KindEllipse Kind = "ellipse"
)

// 文本默认值，与 pdf 元素上的 font/fontsize 一致。
const (
	DefaultFont       = "Helvetica"
	DefaultFontSize   = 11.0
	DefaultLineHeight = 1.0
)

// cursorKeys 列出每类元素可由光标补全的属性。
var cursorKeys = map[Kind][]string{
	KindText:    {"x", "y", "width", "height", "move_cursor"},
	KindLine:    {"x1", "y1", "x2", "y2"},
	KindBarcode: {"x", "y"},
	KindImage:   {"x", "y"},
	KindCircle:  {"x_cen", "y_cen"},
	KindRect:    {"x", "y", "width", "height"},
	KindEllipse: {"x1", "y1", "x2", "y2"},
}

// anchorKeys 中的属性一旦显式给出，元素就不再自动定位。
var anchorKeys = map[Kind]string{
	KindText:    "y",
	KindLine:    "y1",
	KindBarcode: "y",
	KindImage:   "y",
	KindCircle:  "y_cen",
	KindRect:    "y",
	KindEllipse: "y1",
}

// Cursor 是页面上的流式写入位置。y 在同一页内随自动定位的元素单调递减，
// 每次换页由 Reset 恢复到 pageheight - top。
type Cursor struct {
	x, y  float64
	frame Frame

	// FontSize 是元素未声明 fontsize 时使用的字号。
	FontSize float64
}

// NewCursor 创建位于内容区域左上角的光标。
func NewCursor(frame Frame) *Cursor {
	c := &Cursor{frame: frame, FontSize: DefaultFontSize}
	c.Reset()
	return c
}

// Reset 把光标放回内容区域顶部，每次换页调用。
func (c *Cursor) Reset() {
	c.x = c.frame.Margin.Left
	c.y = c.frame.Top()
}

// Move 在文本实际绘制后修正光标：dy 为向下移动的距离，dx 为向右移动的距离。
func (c *Cursor) Move(dy, dx float64) {
	c.y -= dy
	c.x += dx
}

// Pos 返回光标位置的快照。
func (c *Cursor) Pos() Point { return Point{X: c.x, Y: c.y} }

// Frame 返回光标所在页面的尺寸与边距。
func (c *Cursor) Frame() Frame { return c.frame }

// Place 补全 kind 对应的缺失几何属性。没有显式锚点（y/y1/y_cen）的元素会被自动定位：
// 光标先下移元素高度，元素顶边即原光标位置；显式锚点的元素则让光标采用该值，不再额外移动。
// 未识别的 kind 原样返回。
func (c *Cursor) Place(kind Kind, a *Attrs) (*Attrs, error) {
	keys, ok := cursorKeys[kind]
	if !ok {
		return a, nil
	}
	height, err := c.defaultHeight(a)
	if err != nil {
		return nil, err
	}
	anchor := anchorKeys[kind]
	auto := !a.Pinned && !a.Has(anchor)
	left := c.frame.Margin.Left
	width := c.frame.ContentWidth()
	pos := map[string]float64{}

	switch kind {
	case KindLine:
		y := c.y - height/2
		if v, ok := a.Num("y1"); ok {
			y = v
		} else if v, ok := a.Num("y2"); ok {
			y = v
		}
		pos["x1"], pos["x2"] = left, left+width
		pos["y1"], pos["y2"] = y, y
		if auto {
			c.y -= height
		}
	case KindCircle:
		r, ok := a.Num("r")
		if !ok {
			r = height / 2
			a.Set("r", r)
		}
		pos["x_cen"] = left + r
		pos["y_cen"] = c.y - r
		if auto {
			c.y -= 2 * r
		}
	case KindEllipse:
		w, hasW := a.Num("width")
		h, hasH := a.Num("height")
		if !hasW || !hasH {
			auto = false
			break
		}
		x1, y1 := left, 0.0
		if v, ok := a.Num("x1"); ok {
			x1 = v
		}
		if v, ok := a.Num("y1"); ok {
			y1 = v
		} else if auto {
			c.y -= h
			y1 = c.y
		}
		pos["x1"], pos["y1"] = x1, y1
		pos["x2"], pos["y2"] = x1+w, y1+h
	default:
		if auto {
			c.y -= height
		}
		pos["x"], pos["y"] = left, c.y
		pos["width"], pos["height"] = width, height
		if auto {
			pos["move_cursor"] = 1
		} else {
			pos["move_cursor"] = 0
		}
	}

	for _, k := range keys {
		if a.Has(k) {
			continue
		}
		if v, ok := pos[k]; ok {
			a.Set(k, v)
		}
	}
	if !auto {
		if v, ok := a.Num(anchor); ok {
			c.y = v
		}
	}
	a.Auto = auto
	return a, nil
}

// defaultHeight 返回元素高度：显式 height，否则 fontsize * lineheight。
func (c *Cursor) defaultHeight(a *Attrs) (float64, error) {
	if h, ok := a.Num("height"); ok {
		return h, nil
	}
	size, err := a.Float("fontsize", c.FontSize)
	if err != nil {
		return 0, err
	}
	lh, err := a.Float("lineheight", DefaultLineHeight)
	if err != nil {
		return 0, err
	}
	return size * lh, nil
}
