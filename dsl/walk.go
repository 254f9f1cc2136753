package dsl

import (
	"fmt"

	"github.com/ByLCY/pdfml/markup"
)

// Walk 按文档顺序把 AST 重放为 markup.Handler 通知，与 XML 前端产生的序列一致：
// 文本字面量对应字符数据，嵌套元素深度优先展开。
func Walk(doc *Document, h markup.Handler) error {
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("DSL 文档为空")
	}
	return walkElement(doc.Root, h)
}

func walkElement(el *Element, h markup.Handler) error {
	attrs := make([]markup.Attr, 0, len(el.Attrs))
	for _, a := range el.Attrs {
		attrs = append(attrs, markup.Attr{Name: a.Key, Value: a.Value.Text()})
	}
	if err := h.StartElement(el.Name, attrs); err != nil {
		return fmt.Errorf("%s (%s): %w", el.Name, el.Pos, err)
	}
	if el.Body != nil {
		for _, item := range el.Body.Items {
			switch {
			case item.Text != nil:
				if err := h.CharData(string(*item.Text)); err != nil {
					return err
				}
			case item.Element != nil:
				if err := walkElement(item.Element, h); err != nil {
					return err
				}
			}
		}
	}
	return h.EndElement(el.Name)
}
