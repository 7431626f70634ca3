package document

import "github.com/google/uuid"

// Span 表示共享同一样式的一段连续文本，携带稳定标识。
// 不变式：文档内相邻 span 的样式互不相同（始终处于最大合并状态），
// 且除"空文档的唯一占位 span"外不存在空文本 span。
type Span struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Style Style  `json:"style"`
}

// NewSpan 创建一个带新标识的 span。
func NewSpan(text string, style Style) Span {
	return Span{ID: uuid.NewString(), Text: text, Style: style}
}

// StyledChar 是展平文档得到的瞬态投影：单个字符及其样式、
// 所属 span 标识与绝对偏移。仅作为布局引擎输入，不做持久化。
type StyledChar struct {
	Rune   rune
	Style  Style
	SpanID string
	Index  int
}

// normalizeSpans 合并相邻同样式 span 并剔除空 span；
// 全部为空时收敛为单个占位 span。输入切片不被修改。
func normalizeSpans(spans []Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, sp := range spans {
		if sp.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style.Equal(sp.Style) {
			out[n-1].Text += sp.Text
			continue
		}
		out = append(out, sp)
	}
	if len(out) == 0 {
		// 空文档保留一个空 span，样式取首个输入 span（缺省为默认样式）。
		style := DefaultStyle()
		id := ""
		if len(spans) > 0 {
			style = spans[0].Style
			id = spans[0].ID
		}
		if id == "" {
			id = uuid.NewString()
		}
		out = append(out, Span{ID: id, Text: "", Style: style})
	}
	return out
}

// spansFromChars 将展平字符按最大同样式连续段重建为 span 序列。
// 每段沿用段首字符所属 span 的标识，保证编辑后标识尽量稳定。
func spansFromChars(chars []StyledChar) []Span {
	var spans []Span
	for _, c := range chars {
		if n := len(spans); n > 0 && spans[n-1].Style.Equal(c.Style) {
			spans[n-1].Text += string(c.Rune)
			continue
		}
		id := c.SpanID
		if id == "" {
			id = uuid.NewString()
		}
		spans = append(spans, Span{ID: id, Text: string(c.Rune), Style: c.Style})
	}
	return spans
}
