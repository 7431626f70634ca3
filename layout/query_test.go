package layout

import (
	"testing"

	"github.com/ByLCY/inkwell/document"
)

func TestHitTestWithinLine(t *testing.T) {
	res := layoutText("hello world wide", 100)
	midY := res.Lines[0].Y + res.Lines[0].Height/2

	if got := HitTest(res, 0, midY); got != 0 {
		t.Fatalf("行首命中应为 0，实际 %d", got)
	}
	// x=23 落在第 3 个字符（索引 2，中点 25）之前。
	if got := HitTest(res, 23, midY); got != 2 {
		t.Fatalf("字符中点左侧应命中该字符，实际 %d", got)
	}
	// x=27 已越过索引 2 的中点，命中下一个。
	if got := HitTest(res, 27, midY); got != 3 {
		t.Fatalf("字符中点右侧应命中下一字符，实际 %d", got)
	}
}

func TestHitTestClampsOutOfBounds(t *testing.T) {
	res := layoutText("hello world wide", 100)

	if got := HitTest(res, -50, -100); got != 0 {
		t.Fatalf("容器上方/左侧应钳到 0，实际 %d", got)
	}
	if got := HitTest(res, 9999, 9999); got != 16 {
		t.Fatalf("容器下方/右侧应钳到文末（16），实际 %d", got)
	}
	// 行内越过最后一个字符：返回行末偏移加一。
	lastY := res.Lines[1].Y + res.Lines[1].Height/2
	if got := HitTest(res, 9999, lastY); got != 16 {
		t.Fatalf("行尾右侧应返回行末偏移，实际 %d", got)
	}
}

func TestHitTestEmptyLineReturnsLineStart(t *testing.T) {
	res := layoutText("ab\n\ncd", 1000)
	empty := res.Lines[1]
	if got := HitTest(res, 50, empty.Y+empty.Height/2); got != 3 {
		t.Fatalf("空行命中应返回该行起始偏移 3，实际 %d", got)
	}
}

func TestCaretPositionAtLineBoundaries(t *testing.T) {
	res := layoutText("hello world wide", 100)

	// 偏移 0：首行行首。
	pos := CaretPosition(res, 0)
	if !approx(pos.X, 0) || !approx(pos.Y, res.Lines[0].Y) {
		t.Fatalf("偏移 0 光标位置错误: %#v", pos)
	}
	// 偏移 6 恰为折行后第二行行首：光标落在下一行，而不是上一行行尾。
	pos = CaretPosition(res, 6)
	if !approx(pos.Y, res.Lines[1].Y) || !approx(pos.X, res.Lines[1].X) {
		t.Fatalf("折行处光标应在下一行行首: %#v", pos)
	}
	// 文末偏移：末字符右缘。
	pos = CaretPosition(res, 16)
	last := res.Lines[1].Chars[len(res.Lines[1].Chars)-1]
	if !approx(pos.X, last.X+last.Width) {
		t.Fatalf("文末光标应在末字符右缘: %#v", pos)
	}
	if !approx(pos.Height, res.Lines[1].Height) {
		t.Fatalf("光标高度应取整行高度: %g", pos.Height)
	}
}

func TestCaretPositionOnEmptyLine(t *testing.T) {
	res := layoutText("ab\n\ncd", 1000)
	pos := CaretPosition(res, 3)
	empty := res.Lines[1]
	if !approx(pos.Y, empty.Y) || !approx(pos.X, empty.X) || !approx(pos.Height, empty.Height) {
		t.Fatalf("空行光标应取行起点与行高: %#v", pos)
	}
}

func TestCaretPositionEmptyDocument(t *testing.T) {
	res := Layout(document.New(), 100, 100, stubMeasurer{})
	pos := CaretPosition(res, 0)
	if pos.Height <= 0 {
		t.Fatalf("空文档光标仍应有高度: %#v", pos)
	}
}

// TestHitTestCaretRoundTrip 验证坐标映射互逆：对每个合法偏移，
// 先求光标位置，再在该位置命中，必须回到原偏移。
// 覆盖折行、被丢弃的空白、显式换行与空行。
func TestHitTestCaretRoundTrip(t *testing.T) {
	docs := []string{
		"hello world wide", // 折行（宽 100）
		"abc de",           // 触发折行的空格被丢弃（宽 35）
		"ab\n\ncd",         // 显式换行与空行
		"a toolongword b",  // 超宽词溢出
	}
	widths := []float64{100, 35, 1000, 30}

	for di, text := range docs {
		res := layoutText(text, widths[di])
		n := len([]rune(text))
		for off := 0; off <= n; off++ {
			pos := CaretPosition(res, off)
			got := HitTest(res, pos.X, pos.Y+pos.Height/2)
			if got != off {
				t.Fatalf("文档 %q 偏移 %d 往返后变为 %d（光标 %#v）", text, off, got, pos)
			}
		}
	}
}

// TestPositionedCharInverse 验证每个已定位字符的两条互逆性质：
// 在其左上角内侧命中返回其偏移；其偏移的光标横坐标等于其左缘。
func TestPositionedCharInverse(t *testing.T) {
	for _, width := range []float64{100, 35, 1000} {
		res := layoutText("This is a very long sentence that should wrap", width)
		for _, c := range res.Chars {
			if got := HitTest(res, c.X+1, c.Y+1); got != c.Index {
				t.Fatalf("宽 %g：字符 %d 左上角命中返回 %d", width, c.Index, got)
			}
			if pos := CaretPosition(res, c.Index); !approx(pos.X, c.X) {
				t.Fatalf("宽 %g：字符 %d 光标横坐标 %g != %g", width, c.Index, pos.X, c.X)
			}
		}
	}
}

func TestHitTestEmptyDocumentAlwaysZero(t *testing.T) {
	res := Layout(document.New(), 200, 200, stubMeasurer{})
	for _, xy := range [][2]float64{{0, 0}, {-10, -10}, {100, 100}, {9999, 9999}} {
		if got := HitTest(res, xy[0], xy[1]); got != 0 {
			t.Fatalf("空文档任意坐标命中应为 0，(%g, %g) 返回 %d", xy[0], xy[1], got)
		}
	}
}

func TestSelectionBoxesSpanMultipleLines(t *testing.T) {
	res := layoutText("hello world wide", 100)
	// [4, 8)：首行的 "o "（索引 4、5）+ 第二行的 "wo"（索引 6、7）。
	boxes := SelectionBoxes(res, 4, 8)
	if len(boxes) != 2 {
		t.Fatalf("跨两行选区应得到 2 个矩形，实际 %d", len(boxes))
	}
	if !approx(boxes[0].X, 40) || !approx(boxes[0].Width, 20) {
		t.Fatalf("首行矩形错误: %#v", boxes[0])
	}
	if !approx(boxes[1].X, 0) || !approx(boxes[1].Width, 20) {
		t.Fatalf("次行矩形错误: %#v", boxes[1])
	}
	if !approx(boxes[0].Y, res.Lines[0].Y) || !approx(boxes[0].Height, res.Lines[0].Height) {
		t.Fatalf("矩形应取整行高度: %#v", boxes[0])
	}
}

func TestSelectionBoxesSkipLinesWithoutSelectedChars(t *testing.T) {
	res := layoutText("ab\n\ncd", 1000)
	// 选区覆盖空行（偏移 3），但空行没有可定位字符，不产出矩形。
	boxes := SelectionBoxes(res, 0, 6)
	if len(boxes) != 2 {
		t.Fatalf("空行不应产出矩形，实际 %d 个", len(boxes))
	}
}

func TestSelectionBoxesEmptyRange(t *testing.T) {
	res := layoutText("abc", 1000)
	if boxes := SelectionBoxes(res, 2, 2); boxes != nil {
		t.Fatalf("空选区应返回 nil，实际 %#v", boxes)
	}
	if boxes := SelectionBoxes(nil, 0, 3); boxes != nil {
		t.Fatalf("空布局应返回 nil")
	}
}
