package engine

import "errors"

var (
	// ErrMalformed 表示 markup 结构不合法：pdf 之前出现元素、标签不匹配、元素外出现文本等。
	ErrMalformed = errors.New("markup 结构错误")
	// ErrUnsupported 表示未知的元素类型或条码类型。
	ErrUnsupported = errors.New("不支持的元素")
)
