package renderer

import "github.com/ByLCY/pdfml/layout"

// Renderer 是可以输出最终文件的绘图 surface，例如 PDF。
// 布局驱动通过 layout.Surface 绘制，全部结束后调用 Render 取得二进制数据。
type Renderer interface {
	layout.Surface
	Render() ([]byte, error)
}
