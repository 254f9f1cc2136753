package markup_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/pdfml/markup"
)

// eventLog 把通知记录成字符串，便于断言顺序。
type eventLog struct {
	events []string
}

func (l *eventLog) StartElement(name string, attrs []markup.Attr) error {
	parts := []string{"<" + name}
	for _, a := range attrs {
		parts = append(parts, a.Name+"="+a.Value)
	}
	l.events = append(l.events, strings.Join(parts, " ")+">")
	return nil
}

func (l *eventLog) CharData(data string) error {
	if strings.TrimSpace(data) != "" {
		l.events = append(l.events, "#"+data)
	}
	return nil
}

func (l *eventLog) EndElement(name string) error {
	l.events = append(l.events, "</"+name+">")
	return nil
}

func TestDecodeXML(t *testing.T) {
	src := `<pdf unit="inch"><page><text x="1" width="3">Hello &amp; bye</text><line/></page></pdf>`
	var log eventLog
	if err := markup.DecodeXML(strings.NewReader(src), &log); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	want := []string{
		"<pdf unit=inch>", "<page>", "<text x=1 width=3>", "#Hello & bye", "</text>",
		"<line>", "</line>", "</page>", "</pdf>",
	}
	if strings.Join(log.events, "|") != strings.Join(want, "|") {
		t.Fatalf("通知序列不符:\n got=%v\nwant=%v", log.events, want)
	}
}

func TestDecodeXMLMalformed(t *testing.T) {
	var log eventLog
	if err := markup.DecodeXML(strings.NewReader(`<pdf><page></pdf>`), &log); err == nil {
		t.Fatalf("标签不匹配时应报错")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := markup.ParseFormat("dsl"); err != nil || f != markup.FormatDSL {
		t.Fatalf("dsl 应被接受: %v", err)
	}
	if _, err := markup.ParseFormat("yaml"); err == nil {
		t.Fatalf("未知格式应报错")
	}
}
