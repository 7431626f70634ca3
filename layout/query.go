package layout

// 坐标映射：点击命中、光标定位与选区矩形。三者都只读布局结果，
// 与排版互为逆运算（命中某字符左上角附近必须返回其绝对偏移）。

// HitTest 将坐标映射为绝对偏移。纵向先钳制到首/末行；
// 行内从左到右找到第一个"中点在指针右侧"的字符并返回其偏移，
// 没有则返回行末偏移加一。空行返回该源行的起始偏移。
func HitTest(res *Result, x, y float64) int {
	if res == nil || len(res.Lines) == 0 {
		return 0
	}
	line := res.Lines[len(res.Lines)-1]
	for _, ln := range res.Lines {
		if y < ln.Y+ln.Height {
			line = ln
			break
		}
	}
	if len(line.Chars) == 0 {
		return line.Start
	}
	for _, c := range line.Chars {
		if c.X+c.Width/2 > x {
			return c.Index
		}
	}
	return line.Chars[len(line.Chars)-1].Index + 1
}

// CaretPosition 返回偏移处光标的位置与高度，是 HitTest 的逆运算。
// 偏移 0 或空布局返回首行/首字符位置；偏移恰为某行行首时取该行起点
// （折行处光标落在下一行行首）；其余情况取前一个字符的右缘。
func CaretPosition(res *Result, offset int) CaretPos {
	if res == nil || len(res.Lines) == 0 {
		return CaretPos{}
	}
	lineCaret := func(ln Line) CaretPos {
		if len(ln.Chars) > 0 {
			c := ln.Chars[0]
			return CaretPos{X: c.X, Y: ln.Y, Height: ln.Height}
		}
		return CaretPos{X: ln.X, Y: ln.Y, Height: ln.Height}
	}

	if offset <= 0 || len(res.Chars) == 0 {
		return lineCaret(res.Lines[0])
	}
	for _, ln := range res.Lines {
		if ln.Start == offset {
			return lineCaret(ln)
		}
	}
	// 前一个字符：偏移之前最后一个被定位的字符（换行与折行处
	// 被丢弃的空白不参与定位，因此按最大下标查找）。
	var prev *Char
	for i := range res.Chars {
		c := &res.Chars[i]
		if c.Index < offset && (prev == nil || c.Index > prev.Index) {
			prev = c
		}
	}
	if prev == nil {
		return lineCaret(res.Lines[0])
	}
	ln := res.Lines[prev.Line]
	return CaretPos{X: prev.X + prev.Width, Y: ln.Y, Height: ln.Height}
}

// SelectionBoxes 返回 [start, end) 覆盖的每个视觉行一个矩形，
// 矩形取该行选中字符的横向最小/最大范围与整行高度，
// 供控件层绘制跨行选区高亮而无需逐字符矩形。
func SelectionBoxes(res *Result, start, end int) []Box {
	if res == nil || start >= end {
		return nil
	}
	var boxes []Box
	for _, ln := range res.Lines {
		minX, maxX := 0.0, 0.0
		found := false
		for _, c := range ln.Chars {
			if c.Index < start || c.Index >= end {
				continue
			}
			if !found || c.X < minX {
				minX = c.X
			}
			if r := c.X + c.Width; !found || r > maxX {
				maxX = r
			}
			found = true
		}
		if found {
			boxes = append(boxes, Box{X: minX, Y: ln.Y, Width: maxX - minX, Height: ln.Height})
		}
	}
	return boxes
}
