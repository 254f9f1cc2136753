package layout

import (
	"fmt"
	"strings"
)

// Align 是文本块的水平对齐方式。
type Align string

const (
	AlignLeft    Align = "left"
	AlignRight   Align = "right"
	AlignCenter  Align = "center"
	AlignJustify Align = "justify"
)

// ParseAlign 解析 align 属性，空值视为 left。
func ParseAlign(v string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "left":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	case "center":
		return AlignCenter, nil
	case "justify":
		return AlignJustify, nil
	default:
		return AlignLeft, fmt.Errorf("%w: 未知的对齐方式 %q", ErrResolve, v)
	}
}

// tabWidth 是一个制表符展开后的空格数。
const tabWidth = 8

// Word 是一个词及其宽度。连续空格会产生宽度为 0 的空词。
type Word struct {
	Text  string  `json:"text"`
	Width float64 `json:"width"`
}

// Line 是一行排好的词，Gap 为词间距，Offset 为行首水平偏移。
type Line struct {
	Words     []Word  `json:"words"`
	Gap       float64 `json:"gap"`
	Offset    float64 `json:"offset"`
	Justified bool    `json:"justified"`
}

// Width 返回词宽之和加上 (n-1) 个词间距，不含 Offset。
func (l Line) Width() float64 {
	if len(l.Words) == 0 {
		return 0
	}
	w := float64(len(l.Words)-1) * l.Gap
	for _, word := range l.Words {
		w += word.Width
	}
	return w
}

// TextBlock 在 text 元素打开时创建，关闭时绘制后丢弃。
type TextBlock struct {
	X, Y          float64
	Width, Height float64
	Font          string
	FontSize      float64
	LineHeight    float64 // 行高倍数
	Align         Align
	MoveCursor    bool

	content strings.Builder
}

// NewTextBlock 从已经过 Resolver 与 Cursor 处理的属性构造文本块。
// font/fontSize 是文档级默认值。
func NewTextBlock(a *Attrs, font string, fontSize float64) (*TextBlock, error) {
	t := &TextBlock{Font: a.Get("font", font)}
	var ok bool
	if t.Width, ok = a.Num("width"); !ok {
		return nil, fmt.Errorf("%w: text 缺少 width", ErrResolve)
	}
	t.X, _ = a.Num("x")
	t.Y, _ = a.Num("y")
	t.Height, _ = a.Num("height")

	var err error
	if t.FontSize, err = a.Float("fontsize", fontSize); err != nil {
		return nil, err
	}
	if t.LineHeight, err = a.Float("lineheight", DefaultLineHeight); err != nil {
		return nil, err
	}
	if t.Align, err = ParseAlign(a.Get("align", "")); err != nil {
		return nil, err
	}
	t.MoveCursor = a.Bool("move_cursor")
	return t, nil
}

// Append 追加字符数据，制表符展开为空格。
func (t *TextBlock) Append(s string) {
	t.content.WriteString(strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth)))
}

// Content 返回累计的原始文本。
func (t *TextBlock) Content() string { return t.content.String() }

// Leading 返回行距：fontsize * lineheight。
func (t *TextBlock) Leading() float64 { return t.FontSize * t.LineHeight }

// Layout 按段落（\n）与单个空格切分文本，贪心地把词放入宽度为 Width 的行中。
// 宽于 Width 的词独占一行。只有因溢出而结束的行才会两端对齐，段落末行不会。
func (t *TextBlock) Layout(m Measurer) ([]Line, error) {
	content := t.content.String()
	if content == "" {
		return nil, nil
	}
	space, err := m.MeasureText(" ", t.Font, t.FontSize)
	if err != nil {
		return nil, err
	}
	widths := map[string]float64{}
	measure := func(s string) (float64, error) {
		if w, ok := widths[s]; ok {
			return w, nil
		}
		w, err := m.MeasureText(s, t.Font, t.FontSize)
		if err != nil {
			return 0, err
		}
		widths[s] = w
		return w, nil
	}

	var lines []Line
	for _, paragraph := range strings.Split(content, "\n") {
		var words []Word
		// lineWidth 含每个词后面的一个空格
		lineWidth := 0.0
		for _, token := range strings.Split(paragraph, " ") {
			w, err := measure(token)
			if err != nil {
				return nil, err
			}
			if len(words) == 0 || lineWidth+w <= t.Width {
				words = append(words, Word{Text: token, Width: w})
				lineWidth += w + space
				continue
			}
			lines = append(lines, t.finishLine(words, lineWidth, space, false))
			words = []Word{{Text: token, Width: w}}
			lineWidth = w + space
		}
		if len(words) > 0 {
			lines = append(lines, t.finishLine(words, lineWidth, space, true))
		}
	}
	return lines, nil
}

func (t *TextBlock) finishLine(words []Word, lineWidth, space float64, last bool) Line {
	slack := t.Width - lineWidth + space
	line := Line{Words: words, Gap: space}
	switch t.Align {
	case AlignRight:
		line.Offset = slack
	case AlignCenter:
		line.Offset = slack / 2
	case AlignJustify:
		// 单词行无法两端对齐，保持自然间距
		if !last && len(words) > 1 {
			line.Gap = space + slack/float64(len(words)-1)
			line.Justified = true
		}
	}
	return line
}

// Draw 排版并逐行输出到 surface，返回需要回写给光标的高度：
// 开启 MoveCursor 时为行高总和减去一行（首行已占用预估高度），否则为 0。
func (t *TextBlock) Draw(s Surface) (float64, error) {
	if err := s.SetFont(t.Font, t.FontSize); err != nil {
		return 0, err
	}
	lines, err := t.Layout(s)
	if err != nil {
		return 0, err
	}
	leading := t.Leading()
	s.BeginTextRun(Point{X: t.X, Y: t.Y + t.Height - t.FontSize})
	consumed := 0.0
	for _, ln := range lines {
		advance := ln.Offset
		if ln.Offset != 0 {
			s.MoveTextCursor(ln.Offset, 0)
		}
		for _, w := range ln.Words {
			if w.Text != "" {
				s.TextOut(w.Text)
			}
			s.MoveTextCursor(w.Width+ln.Gap, 0)
			advance += w.Width + ln.Gap
		}
		s.MoveTextCursor(-advance, leading)
		consumed += leading
	}
	if err := s.DrawText(); err != nil {
		return 0, err
	}
	if !t.MoveCursor || len(lines) == 0 {
		return 0, nil
	}
	return consumed - leading, nil
}
