package document

import "strings"

// Align 表示水平对齐方式。
type Align string

const (
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
	AlignJustify Align = "justify"
)

// VAlign 表示垂直对齐方式。
type VAlign string

const (
	VAlignTop    VAlign = "top"
	VAlignMiddle VAlign = "middle"
	VAlignBottom VAlign = "bottom"
)

// Document 是不可变的富文本文档值：有序 span 序列、对齐方式、
// 内边距与"行号 → 列表项"映射。所有操作均返回新文档，原值不变。
//
// 绝对偏移指展平后纯文本的字符（rune）下标，在任何折行之前计数；
// 文本中的 \n 划分"源行"，与布局产生的"视觉行"无关。
type Document struct {
	Spans   []Span
	Align   Align
	VAlign  VAlign
	Padding float64
	Lists   map[int]ListItem
}

// New 创建空文档：唯一的空占位 span，默认样式与对齐。
func New() Document {
	return Document{
		Spans:  []Span{NewSpan("", DefaultStyle())},
		Align:  AlignLeft,
		VAlign: VAlignTop,
	}
}

// FromText 以单一样式创建文档。
func FromText(text string, style Style) Document {
	d := New()
	d.Spans = []Span{NewSpan(text, style)}
	return d
}

// derive 返回携带新 span 序列的副本；列表映射等元数据按引用共享，
// 文本操作从不修改映射，列表操作自行做写时复制。
func (d Document) derive(spans []Span) Document {
	out := d
	out.Spans = spans
	return out
}

// Length 返回展平文本的字符总数，空文档为 0。
func (d Document) Length() int {
	n := 0
	for _, sp := range d.Spans {
		n += len([]rune(sp.Text))
	}
	return n
}

// PlainText 返回全部 span 文本的拼接。
func (d Document) PlainText() string {
	var b strings.Builder
	for _, sp := range d.Spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// LineCount 返回源行数（按 \n 划分），空文档为 1。
func (d Document) LineCount() int {
	return strings.Count(d.PlainText(), "\n") + 1
}

// Flatten 将文档展平为带样式字符序列，绝对偏移按 span 顺序取 0..N-1。
func (d Document) Flatten() []StyledChar {
	chars := make([]StyledChar, 0, d.Length())
	idx := 0
	for _, sp := range d.Spans {
		for _, r := range sp.Text {
			chars = append(chars, StyledChar{Rune: r, Style: sp.Style, SpanID: sp.ID, Index: idx})
			idx++
		}
	}
	return chars
}

// AbsoluteToSpan 将绝对偏移换算为 (span 下标, span 内字符偏移)。
// 越界输入不报错而是钳制：<=0 钳到首 span 起点，>=Length 钳到末 span 终点。
// 恰好落在 span 边界且存在后续 span 时返回后续 span 的起点，
// 与 StyleAt 的边界语义保持一致。
func (d Document) AbsoluteToSpan(offset int) (spanIndex, charOffset int) {
	if offset <= 0 || len(d.Spans) == 0 {
		return 0, 0
	}
	cum := 0
	for i, sp := range d.Spans {
		n := len([]rune(sp.Text))
		if offset < cum+n {
			return i, offset - cum
		}
		if offset == cum+n && i == len(d.Spans)-1 {
			return i, n
		}
		cum += n
	}
	last := len(d.Spans) - 1
	return last, len([]rune(d.Spans[last].Text))
}

// SpanToAbsolute 是 AbsoluteToSpan 的逆运算。
func (d Document) SpanToAbsolute(spanIndex, charOffset int) int {
	if spanIndex < 0 {
		return 0
	}
	cum := 0
	for i, sp := range d.Spans {
		if i == spanIndex {
			n := len([]rune(sp.Text))
			if charOffset < 0 {
				charOffset = 0
			}
			if charOffset > n {
				charOffset = n
			}
			return cum + charOffset
		}
		cum += len([]rune(sp.Text))
	}
	return cum
}

// StyleAt 返回偏移处所属 span 的样式。偏移恰好位于 span 边界且存在
// 后续 span 时，返回后续 span 的样式：光标停在边界后继续输入时，
// 继承的是后一段文字的格式。
func (d Document) StyleAt(offset int) Style {
	if len(d.Spans) == 0 {
		return DefaultStyle()
	}
	i, _ := d.AbsoluteToSpan(offset)
	return d.Spans[i].Style
}

// Insert 在 offset 处插入 text。有效样式为插入点样式叠加 patch；
// 与所在 span 样式一致时直接拼接，否则将该 span 一分为三并规范化。
// text 为空时原样返回。
func (d Document) Insert(offset int, text string, patch *StylePatch) Document {
	if text == "" {
		return d
	}
	if offset < 0 {
		offset = 0
	}
	if n := d.Length(); offset > n {
		offset = n
	}

	effective := d.StyleAt(offset)
	if patch != nil {
		effective = patch.Apply(effective)
	}

	i, co := d.AbsoluteToSpan(offset)
	target := d.Spans[i]
	runes := []rune(target.Text)

	spans := make([]Span, 0, len(d.Spans)+2)
	spans = append(spans, d.Spans[:i]...)
	if effective.Equal(target.Style) {
		// 样式一致：原地拼接，保留 span 标识。
		target.Text = string(runes[:co]) + text + string(runes[co:])
		spans = append(spans, target)
	} else {
		before := Span{ID: target.ID, Text: string(runes[:co]), Style: target.Style}
		mid := NewSpan(text, effective)
		after := NewSpan(string(runes[co:]), target.Style)
		for _, sp := range []Span{before, mid, after} {
			if sp.Text != "" {
				spans = append(spans, sp)
			}
		}
	}
	spans = append(spans, d.Spans[i+1:]...)
	return d.derive(normalizeSpans(spans))
}

// DeleteRange 删除 [start, end) 区间的字符并按最大同样式段重建 span。
// start >= end 时为空操作；删空后保留单个空 span，样式沿用原首 span。
func (d Document) DeleteRange(start, end int) Document {
	n := d.Length()
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return d
	}

	chars := d.Flatten()
	remaining := make([]StyledChar, 0, len(chars)-(end-start))
	remaining = append(remaining, chars[:start]...)
	remaining = append(remaining, chars[end:]...)

	if len(remaining) == 0 {
		keep := d.Spans[0]
		return d.derive([]Span{{ID: keep.ID, Text: "", Style: keep.Style}})
	}
	return d.derive(normalizeSpans(spansFromChars(remaining)))
}

// ApplyStyle 将补丁合并到 [start, end) 内每个字符的样式上并重建 span。
// start >= end 时为空操作。
func (d Document) ApplyStyle(start, end int, patch StylePatch) Document {
	n := d.Length()
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return d
	}

	chars := d.Flatten()
	for i := start; i < end; i++ {
		chars[i].Style = patch.Apply(chars[i].Style)
	}
	return d.derive(normalizeSpans(spansFromChars(chars)))
}

// StyleFlag 标识可切换的布尔样式属性。
type StyleFlag int

const (
	FlagBold StyleFlag = iota
	FlagItalic
	FlagUnderline
	FlagStrikethrough
)

// ToggleFlag 切换 [start, end) 内的样式属性：当且仅当区间内所有字符
// 均已持有该属性时统一清除，否则统一设置。不采用多数规则。
func (d Document) ToggleFlag(start, end int, flag StyleFlag) Document {
	n := d.Length()
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= end {
		return d
	}

	chars := d.Flatten()
	all := true
	for i := start; i < end; i++ {
		if !flagSet(chars[i].Style, flag) {
			all = false
			break
		}
	}

	patch := flagPatch(flag, !all)
	return d.ApplyStyle(start, end, patch)
}

// ToggleBold 切换区间粗体。
func (d Document) ToggleBold(start, end int) Document {
	return d.ToggleFlag(start, end, FlagBold)
}

// ToggleItalic 切换区间斜体。
func (d Document) ToggleItalic(start, end int) Document {
	return d.ToggleFlag(start, end, FlagItalic)
}

func flagSet(s Style, flag StyleFlag) bool {
	switch flag {
	case FlagBold:
		return s.Bold()
	case FlagItalic:
		return s.Italic
	case FlagUnderline:
		return s.Underline
	case FlagStrikethrough:
		return s.Strikethrough
	default:
		return false
	}
}

func flagPatch(flag StyleFlag, set bool) StylePatch {
	switch flag {
	case FlagBold:
		w := WeightNormal
		if set {
			w = WeightBold
		}
		return StylePatch{Weight: &w}
	case FlagItalic:
		return StylePatch{Italic: &set}
	case FlagUnderline:
		return StylePatch{Underline: &set}
	case FlagStrikethrough:
		return StylePatch{Strikethrough: &set}
	default:
		return StylePatch{}
	}
}

// ReplaceSelection 删除选区再于删除点插入 text，
// 返回新文档与插入文本之后的光标偏移。
func (d Document) ReplaceSelection(sel Selection, text string, patch *StylePatch) (Document, int) {
	start, end := sel.Normalized()
	out := d.DeleteRange(start, end)
	out = out.Insert(start, text, patch)
	if start < 0 {
		start = 0
	}
	if n := d.Length(); start > n {
		start = n
	}
	return out, start + len([]rune(text))
}

// SelectedText 返回选区覆盖的展平文本。
func (d Document) SelectedText(sel Selection) string {
	start, end := sel.Normalized()
	runes := []rune(d.PlainText())
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}

// Clone 返回深拷贝（含列表映射），供历史快照使用。
func (d Document) Clone() Document {
	out := d
	out.Spans = make([]Span, len(d.Spans))
	copy(out.Spans, d.Spans)
	if d.Lists != nil {
		out.Lists = make(map[int]ListItem, len(d.Lists))
		for k, v := range d.Lists {
			out.Lists[k] = v
		}
	}
	return out
}
