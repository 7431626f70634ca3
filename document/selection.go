package document

// Selection 是一对绝对偏移（anchor/focus），由外部控件层持有。
// anchor == focus 时表示无范围的光标。focus 可以在 anchor 之前（反向选择）。
type Selection struct {
	Anchor int `json:"anchor"`
	Focus  int `json:"focus"`
}

// Caret 构造一个光标选区。
func Caret(offset int) Selection {
	return Selection{Anchor: offset, Focus: offset}
}

// IsCaret 报告选区是否为光标（无范围）。
func (s Selection) IsCaret() bool { return s.Anchor == s.Focus }

// Normalized 返回升序的 (start, end)。
func (s Selection) Normalized() (start, end int) {
	if s.Anchor <= s.Focus {
		return s.Anchor, s.Focus
	}
	return s.Focus, s.Anchor
}

// Clamp 将选区两端钳制到 [0, length]。
func (s Selection) Clamp(length int) Selection {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > length {
			return length
		}
		return v
	}
	return Selection{Anchor: clamp(s.Anchor), Focus: clamp(s.Focus)}
}
