package layout

import (
	"strings"
	"testing"
)

// tableMeasurer 按查表返回宽度，未列出的字符串按每字符 5pt 计算。
type tableMeasurer map[string]float64

func (m tableMeasurer) MeasureText(s, font string, size float64) (float64, error) {
	if w, ok := m[s]; ok {
		return w, nil
	}
	return float64(len(s)) * 5, nil
}

func newBlock(width float64, align Align, content string) *TextBlock {
	t := &TextBlock{Width: width, Height: 11, Font: DefaultFont, FontSize: 11, LineHeight: 1, Align: align}
	t.Append(content)
	return t
}

// TestJustifyScenario: alpha..delta 加 3 个自然间距恰为 290，epsilon 溢出 300。
func TestJustifyScenario(t *testing.T) {
	m := tableMeasurer{" ": 10, "alpha": 60, "beta": 60, "gamma": 70, "delta": 70, "epsilon": 80}
	lines, err := newBlock(300, AlignJustify, "alpha beta gamma delta epsilon").Layout(m)
	if err != nil {
		t.Fatalf("排版失败: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("期望 2 行，实际 %d", len(lines))
	}
	first := lines[0]
	if len(first.Words) != 4 || !first.Justified {
		t.Fatalf("第一行应为 4 个词且两端对齐: %+v", first)
	}
	if !eq(first.Width(), 300) {
		t.Fatalf("第一行应恰好占满 300，实际 %g", first.Width())
	}
	if first.Gap < 10 {
		t.Fatalf("两端对齐间距不应小于自然间距，实际 %g", first.Gap)
	}
	second := lines[1]
	if len(second.Words) != 1 || second.Words[0].Text != "epsilon" {
		t.Fatalf("第二行应只有 epsilon: %+v", second)
	}
	if second.Justified || second.Offset != 0 || second.Gap != 10 {
		t.Fatalf("末行不应两端对齐且偏移为 0: %+v", second)
	}
}

func TestSingleShortLine(t *testing.T) {
	lines, err := newBlock(500, AlignLeft, "a short line").Layout(tableMeasurer{})
	if err != nil {
		t.Fatalf("排版失败: %v", err)
	}
	if len(lines) != 1 || lines[0].Offset != 0 || len(lines[0].Words) != 3 {
		t.Fatalf("期望单行且左对齐偏移为 0: %+v", lines)
	}
}

// TestLineWidthInvariant 验证每行宽度不超过盒宽，唯一例外是单个超宽词。
func TestLineWidthInvariant(t *testing.T) {
	content := "lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor " +
		"incididunt ut labore et dolore magna aliqua supercalifragilisticexpialidocious ut enim"
	for _, align := range []Align{AlignLeft, AlignRight, AlignCenter, AlignJustify} {
		for _, width := range []float64{60, 97, 150, 333} {
			lines, err := newBlock(width, align, content).Layout(tableMeasurer{})
			if err != nil {
				t.Fatalf("排版失败: %v", err)
			}
			var words []string
			for i, ln := range lines {
				if ln.Width() > width+1e-9 && len(ln.Words) != 1 {
					t.Fatalf("align=%s width=%g 第 %d 行超宽: %g", align, width, i, ln.Width())
				}
				if ln.Justified && i == len(lines)-1 {
					t.Fatalf("末行不应两端对齐")
				}
				if ln.Justified && !eq(ln.Width(), width) {
					t.Fatalf("两端对齐行应恰好占满 %g，实际 %g", width, ln.Width())
				}
				for _, w := range ln.Words {
					words = append(words, w.Text)
				}
			}
			if got := strings.Join(words, " "); got != content {
				t.Fatalf("排版丢失或打乱了词: %q", got)
			}
		}
	}
}

func TestOverwideWordAlone(t *testing.T) {
	m := tableMeasurer{" ": 5, "huge": 500, "a": 5}
	lines, err := newBlock(100, AlignJustify, "huge a a").Layout(m)
	if err != nil {
		t.Fatalf("排版失败: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("期望 2 行，实际 %d: %+v", len(lines), lines)
	}
	if len(lines[0].Words) != 1 || lines[0].Justified || lines[0].Gap != 5 {
		t.Fatalf("超宽词应独占一行且不两端对齐: %+v", lines[0])
	}
}

func TestAlignOffsets(t *testing.T) {
	m := tableMeasurer{" ": 10, "ab": 40, "cd": 40}
	right, _ := newBlock(200, AlignRight, "ab cd").Layout(m)
	if !eq(right[0].Offset, 110) {
		t.Fatalf("右对齐偏移期望 110，实际 %g", right[0].Offset)
	}
	center, _ := newBlock(200, AlignCenter, "ab cd").Layout(m)
	if !eq(center[0].Offset, 55) {
		t.Fatalf("居中偏移期望 55，实际 %g", center[0].Offset)
	}
}

func TestEmptyAndWhitespaceContent(t *testing.T) {
	lines, err := newBlock(100, AlignLeft, "").Layout(tableMeasurer{})
	if err != nil || len(lines) != 0 {
		t.Fatalf("空内容应产生 0 行: %+v err=%v", lines, err)
	}

	spaced, _ := newBlock(1000, AlignLeft, "a  b").Layout(tableMeasurer{" ": 5})
	if len(spaced) != 1 || len(spaced[0].Words) != 3 || spaced[0].Words[1].Text != "" {
		t.Fatalf("连续空格应保留为宽度 0 的空词: %+v", spaced)
	}

	paragraphs, _ := newBlock(1000, AlignLeft, "one\n\ntwo").Layout(tableMeasurer{})
	if len(paragraphs) != 3 {
		t.Fatalf("两个换行应产生 3 行（含空行），实际 %d", len(paragraphs))
	}

	tabbed := newBlock(1000, AlignLeft, "a\tb")
	if got := tabbed.Content(); got != "a        b" {
		t.Fatalf("制表符应展开为 8 个空格，实际 %q", got)
	}
}

func TestTextBlockDraw(t *testing.T) {
	rec := &Recorder{Measure: func(s, font string, size float64) float64 {
		return float64(len(s)) * 10
	}}
	block := &TextBlock{X: 72, Y: 700, Width: 100, Height: 12, Font: "Helvetica", FontSize: 12, LineHeight: 1.5, MoveCursor: true}
	block.Append("aaaa bbbb cccc\ndddd")
	consumed, err := block.Draw(rec)
	if err != nil {
		t.Fatalf("绘制失败: %v", err)
	}
	// "aaaa bbbb" = 90 放得下，cccc 溢出；dddd 为第二段：共 3 行，行距 18。
	if !eq(consumed, 2*18) {
		t.Fatalf("回写高度期望 36，实际 %g", consumed)
	}
	begin := rec.Named("beginText")
	if len(begin) != 1 || !eq(begin[0].Args[0], 72) || !eq(begin[0].Args[1], 700) {
		t.Fatalf("首行基线应在 y+height-fontsize: %+v", begin)
	}
	if len(rec.Words) != 4 {
		t.Fatalf("期望输出 4 个词，实际 %d", len(rec.Words))
	}
	wantY := []float64{700, 700, 682, 664}
	wantX := []float64{72, 122, 72, 72}
	for i, w := range rec.Words {
		if !eq(w.Y, wantY[i]) || !eq(w.X, wantX[i]) {
			t.Fatalf("第 %d 个词 %q 位置错误: (%g,%g)", i, w.Text, w.X, w.Y)
		}
	}
	if len(rec.Named("drawText")) != 1 {
		t.Fatalf("应调用一次 DrawText")
	}

	block.MoveCursor = false
	if consumed, _ := block.Draw(rec); consumed != 0 {
		t.Fatalf("未开启 move_cursor 时应返回 0，实际 %g", consumed)
	}
}

func TestNewTextBlock(t *testing.T) {
	a := NewAttrs(map[string]string{"align": "center", "fontsize": "9", "font": "Courier"})
	a.Set("width", 200)
	a.Set("x", 10)
	a.Set("y", 20)
	a.Set("height", 9)
	a.Set("move_cursor", 1)
	block, err := NewTextBlock(a, DefaultFont, DefaultFontSize)
	if err != nil {
		t.Fatalf("创建文本块失败: %v", err)
	}
	if block.Align != AlignCenter || block.Font != "Courier" || block.FontSize != 9 || !block.MoveCursor {
		t.Fatalf("文本块属性错误: %+v", block)
	}
	if _, err := NewTextBlock(NewAttrs(map[string]string{"align": "sideways", "width": "1"}), DefaultFont, 11); err == nil {
		t.Fatalf("未知对齐方式应报错")
	}
}

// 首行恰好等于盒宽且后面紧跟换行时，不应产生额外的空行。
func TestNoBlankLineWhenEqualWidthThenNewline(t *testing.T) {
	lines, err := newBlock(40, AlignLeft, "SAMPLE-A\nSAMPLE-B").Layout(tableMeasurer{})
	if err != nil {
		t.Fatalf("排版失败: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("期望 2 行，实际 %d: %+v", len(lines), lines)
	}
	if lines[0].Words[0].Text != "SAMPLE-A" || lines[1].Words[0].Text != "SAMPLE-B" {
		t.Fatalf("行内容不符: %+v", lines)
	}
}
