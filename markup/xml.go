package markup

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// DecodeXML 以流式方式读取 XML，把每个 token 转换为 Handler 通知。
// 结构错误（未闭合、标签不匹配）直接返回，已推送的通知不会回滚。
func DecodeXML(r io.Reader, h Handler) error {
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("解析 XML 失败: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			attrs := make([]Attr, 0, len(t.Attr))
			for _, a := range t.Attr {
				attrs = append(attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if err := h.StartElement(t.Name.Local, attrs); err != nil {
				return err
			}
		case xml.CharData:
			if err := h.CharData(string(t)); err != nil {
				return err
			}
		case xml.EndElement:
			if err := h.EndElement(t.Name.Local); err != nil {
				return err
			}
		}
	}
}
