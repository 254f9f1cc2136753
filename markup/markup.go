// Package markup 定义布局驱动消费的三种通知（元素开始、字符数据、元素结束），
// 以及基于 encoding/xml 的 XML 前端。
package markup

import "fmt"

// Attr 是一个有序的属性对。
type Attr struct {
	Name  string
	Value string
}

// Handler 接收按文档顺序推送的通知，任一回调返回错误都会中止解析。
type Handler interface {
	StartElement(name string, attrs []Attr) error
	CharData(data string) error
	EndElement(name string) error
}

// Format 指定 markup 的语法。
type Format string

const (
	FormatXML Format = "xml"
	FormatDSL Format = "dsl"
)

// ParseFormat 校验 -format 之类的外部输入。
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatXML, FormatDSL:
		return Format(s), nil
	default:
		return "", fmt.Errorf("未知的 markup 格式 %q（可选 xml、dsl）", s)
	}
}

// AttrMap 把有序属性转为 map，同名属性后者覆盖前者。
func AttrMap(attrs []Attr) map[string]string {
	out := make(map[string]string, len(attrs))
	for _, a := range attrs {
		out[a.Name] = a.Value
	}
	return out
}
