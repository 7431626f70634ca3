package layout

import "github.com/ByLCY/inkwell/document"

// 布局引擎：展平 → 分词 → 贪心折行 → 行度量 → 对齐 → 定位。
// 布局没有跨调用状态，是 (文档, 容器尺寸, 测量后端) 的纯函数，
// 每次调用完整重算。

type breakReason int

const (
	breakWrap    breakReason = iota // 宽度不足触发折行
	breakNewline                    // 显式换行
	breakEnd                        // 文本结束
)

// pendingChar 是尚未定位的行内字符及其测量宽度。
type pendingChar struct {
	c     document.StyledChar
	width float64
	kind  TokenKind
}

// Layout 对文档在给定容器尺寸下做完整排版。
// 所有输入都被完整消费，不存在失败路径。
func Layout(doc document.Document, width, height float64, m Measurer) *Result {
	res := &Result{Width: width, Height: height, Padding: doc.Padding}
	tokens := Tokenize(doc.Flatten(), m)

	pad := doc.Padding
	curY := pad
	sourceLine := 0
	lineStart := 0
	var cur []pendingChar
	curWidth := 0.0

	lineItem := func() (*document.ListItem, float64) {
		if it, ok := doc.Lists[sourceLine]; ok {
			item := it
			return &item, listIndentStep * float64(it.Level+1)
		}
		return nil, 0
	}

	// 可用宽度 = 容器宽度 - 两侧内边距 - 当前源行的列表缩进。
	avail := func() float64 {
		_, indent := lineItem()
		a := width - 2*pad - indent
		if a < 0 {
			a = 0
		}
		return a
	}

	finalize := func(reason breakReason) {
		item, indent := lineItem()

		// 行高取各字符 (上升+下降)×行高倍数 的最大值，基线取最大缩放上升部。
		// 空行（纯 \n）使用默认样式度量，保证光标仍有高度。
		lineHeight, baseline := 0.0, 0.0
		measure := func(style document.Style) {
			fm := m.Metrics(style)
			mult := style.LineHeight
			if mult <= 0 {
				mult = 1
			}
			if h := (fm.Ascent + fm.Descent) * mult; h > lineHeight {
				lineHeight = h
			}
			if a := fm.Ascent * mult; a > baseline {
				baseline = a
			}
		}
		for _, pc := range cur {
			measure(pc.c.Style)
		}
		if len(cur) == 0 {
			measure(document.DefaultStyle())
		}

		slack := avail() - curWidth

		// 两端对齐只拉伸因折行而结束的行；段落末行（显式换行或文本结束）
		// 按左对齐处理。居中/靠右则换算为固定起始偏移。
		startX := pad + indent
		switch doc.Align {
		case document.AlignJustify:
			if reason == breakWrap {
				stretchSpaces(cur, slack)
			}
		case document.AlignCenter:
			if slack > 0 {
				startX += slack / 2
			}
		case document.AlignRight:
			if slack > 0 {
				startX += slack
			}
		}

		lineIdx := len(res.Lines)
		x := startX
		lineChars := make([]Char, 0, len(cur))
		for _, pc := range cur {
			lineChars = append(lineChars, Char{
				Rune:   pc.c.Rune,
				SpanID: pc.c.SpanID,
				Index:  pc.c.Index,
				Line:   lineIdx,
				X:      x,
				Y:      curY,
				Width:  pc.width,
				Style:  pc.c.Style,
			})
			x += pc.width
		}

		start := lineStart
		if len(lineChars) > 0 {
			start = lineChars[0].Index
		}
		res.Lines = append(res.Lines, Line{
			Chars:      lineChars,
			X:          startX,
			Y:          curY,
			Height:     lineHeight,
			Baseline:   baseline,
			Width:      x - startX,
			Start:      start,
			SourceLine: sourceLine,
			ListItem:   item,
			Indent:     indent,
		})
		curY += lineHeight
		cur = cur[:0]
		curWidth = 0
	}

	appendToken := func(tok Token, kind TokenKind) {
		for _, c := range tok.Chars {
			cur = append(cur, pendingChar{c: c, width: m.Advance(c.Rune, c.Style), kind: kind})
		}
		curWidth += tok.Width
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case TokenNewline:
			for _, c := range tok.Chars {
				finalize(breakNewline)
				sourceLine++
				lineStart = c.Index + 1
			}
		case TokenSpace:
			if len(cur) > 0 && curWidth+tok.Width > avail() {
				// 触发折行的空白直接丢弃，折行后不以空格开头。
				finalize(breakWrap)
				lineStart = tok.Chars[len(tok.Chars)-1].Index + 1
				continue
			}
			appendToken(tok, TokenSpace)
		case TokenWord:
			if len(cur) > 0 && curWidth+tok.Width > avail() {
				finalize(breakWrap)
				lineStart = tok.Chars[0].Index
			}
			// 空行上永远接收整个词：超宽的词独占一行并允许溢出，
			// 保证排版始终向前推进（不做断词）。
			appendToken(tok, TokenWord)
		}
	}
	finalize(breakEnd)

	contentHeight := curY - pad
	res.ContentHeight = contentHeight

	// 垂直对齐：所有行定位完成后统一平移一次。
	shift := 0.0
	switch doc.VAlign {
	case document.VAlignMiddle:
		shift = (height-contentHeight)/2 - pad
	case document.VAlignBottom:
		shift = height - 2*pad - contentHeight
	}
	if shift != 0 {
		for i := range res.Lines {
			res.Lines[i].Y += shift
			for j := range res.Lines[i].Chars {
				res.Lines[i].Chars[j].Y += shift
			}
		}
	}

	total := 0
	for _, ln := range res.Lines {
		total += len(ln.Chars)
	}
	res.Chars = make([]Char, 0, total)
	for _, ln := range res.Lines {
		res.Chars = append(res.Chars, ln.Chars...)
	}
	return res
}

// stretchSpaces 将剩余宽度均匀分配到首尾词之间的空白字符上。
func stretchSpaces(cur []pendingChar, slack float64) {
	if slack <= 0 {
		return
	}
	first, last := -1, -1
	for i, pc := range cur {
		if pc.kind == TokenWord {
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return
	}
	count := 0
	for i := first; i <= last; i++ {
		if cur[i].kind == TokenSpace {
			count++
		}
	}
	if count == 0 {
		return
	}
	extra := slack / float64(count)
	for i := first; i <= last; i++ {
		if cur[i].kind == TokenSpace {
			cur[i].width += extra
		}
	}
}
