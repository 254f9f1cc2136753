package engine

import (
	"io"
	"log/slog"

	"github.com/ByLCY/pdfml/layout"
)

// Options 控制一次文档生成。
type Options struct {
	// Surface 接收全部绘图调用，不能为空。
	Surface layout.Surface
	// ImageDir 是 image 元素 src 的基准目录。
	ImageDir string
	// Logger 为空时丢弃日志。
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
