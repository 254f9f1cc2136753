package layout

// 该文件定义布局核心共用的几何与资源描述。坐标单位统一为 pt。

// Point 表示页面坐标中的一个点。
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Margin 以 pt 为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Frame 描述一页的尺寸与边距，是 Resolver 与 Cursor 的共同输入。
type Frame struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margin  `json:"margin"`
}

// ContentWidth 返回左右边距之间的可用宽度。
func (f Frame) ContentWidth() float64 {
	return f.Width - f.Margin.Left - f.Margin.Right
}

// Top 返回内容区域顶部的 y 坐标。
func (f Frame) Top() float64 {
	return f.Height - f.Margin.Top
}

// Color 采用 0-1 的 RGB 分量。
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Black 是默认的描边与填充颜色。
var Black = Color{}

// DocumentMeta 保存 PDF 元信息。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

// Paint 决定形状是否描边、是否填充。
type Paint struct {
	Stroke bool `json:"stroke"`
	Fill   bool `json:"fill"`
}
