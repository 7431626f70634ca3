package document

// 该文件定义文本样式与样式补丁，供文档模型、布局引擎与序列化共用。

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Outline 描述文字描边（颜色 + 宽度）。
type Outline struct {
	Color Color   `json:"color"`
	Width float64 `json:"width"`
}

// Shadow 描述文字投影（颜色、模糊半径与 x/y 偏移）。
type Shadow struct {
	Color   Color   `json:"color"`
	Blur    float64 `json:"blur"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// 字重常量，对应 CSS 语义的 100-900。
const (
	WeightNormal = 400
	WeightBold   = 700
)

// Style 描述一段文本的完整样式。值语义、创建后不再修改。
type Style struct {
	Family        string   `json:"family"`
	Size          float64  `json:"size"` // pt
	Weight        int      `json:"weight"`
	Italic        bool     `json:"italic"`
	Color         Color    `json:"color"`
	Background    *Color   `json:"background,omitempty"` // 高亮背景，nil 表示无
	Underline     bool     `json:"underline"`
	Strikethrough bool     `json:"strikethrough"`
	LetterSpacing float64  `json:"letterSpacing"`
	LineHeight    float64  `json:"lineHeight"` // 行高倍数
	Outline       *Outline `json:"outline,omitempty"`
	Shadow        *Shadow  `json:"shadow,omitempty"`
}

// DefaultStyle 返回进程级默认样式，用于空文档与未指定样式的插入。
func DefaultStyle() Style {
	return Style{
		Family:     "sans-serif",
		Size:       16,
		Weight:     WeightNormal,
		Color:      Color{R: 30, G: 30, B: 30},
		LineHeight: 1.2,
	}
}

// Bold 报告字重是否达到粗体。
func (s Style) Bold() bool { return s.Weight >= WeightBold }

// Equal 比较两个样式是否完全一致（指针字段按值比较）。
// 相邻 span 合并与样式重建都依赖该判断。
func (s Style) Equal(o Style) bool {
	if s.Family != o.Family || s.Size != o.Size || s.Weight != o.Weight ||
		s.Italic != o.Italic || s.Color != o.Color ||
		s.Underline != o.Underline || s.Strikethrough != o.Strikethrough ||
		s.LetterSpacing != o.LetterSpacing || s.LineHeight != o.LineHeight {
		return false
	}
	if !colorPtrEqual(s.Background, o.Background) {
		return false
	}
	if (s.Outline == nil) != (o.Outline == nil) {
		return false
	}
	if s.Outline != nil && *s.Outline != *o.Outline {
		return false
	}
	if (s.Shadow == nil) != (o.Shadow == nil) {
		return false
	}
	if s.Shadow != nil && *s.Shadow != *o.Shadow {
		return false
	}
	return true
}

func colorPtrEqual(a, b *Color) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

// StylePatch describes a partial style change. Pointer fields allow
// distinguishing between "not provided" (nil) and "set to this value";
// the Clear* flags remove the corresponding optional field entirely.
type StylePatch struct {
	Family        *string  `json:"family,omitempty"`
	Size          *float64 `json:"size,omitempty"`
	Weight        *int     `json:"weight,omitempty"`
	Italic        *bool    `json:"italic,omitempty"`
	Color         *Color   `json:"color,omitempty"`
	Background    *Color   `json:"background,omitempty"`
	Underline     *bool    `json:"underline,omitempty"`
	Strikethrough *bool    `json:"strikethrough,omitempty"`
	LetterSpacing *float64 `json:"letterSpacing,omitempty"`
	LineHeight    *float64 `json:"lineHeight,omitempty"`
	Outline       *Outline `json:"outline,omitempty"`
	Shadow        *Shadow  `json:"shadow,omitempty"`

	ClearBackground bool `json:"clearBackground,omitempty"`
	ClearOutline    bool `json:"clearOutline,omitempty"`
	ClearShadow     bool `json:"clearShadow,omitempty"`
}

// Apply 将补丁合并到 base 上并返回新样式，base 不受影响。
func (p StylePatch) Apply(base Style) Style {
	out := base
	if p.Family != nil {
		out.Family = *p.Family
	}
	if p.Size != nil {
		out.Size = *p.Size
	}
	if p.Weight != nil {
		out.Weight = *p.Weight
	}
	if p.Italic != nil {
		out.Italic = *p.Italic
	}
	if p.Color != nil {
		out.Color = *p.Color
	}
	if p.Background != nil {
		bg := *p.Background
		out.Background = &bg
	}
	if p.ClearBackground {
		out.Background = nil
	}
	if p.Underline != nil {
		out.Underline = *p.Underline
	}
	if p.Strikethrough != nil {
		out.Strikethrough = *p.Strikethrough
	}
	if p.LetterSpacing != nil {
		out.LetterSpacing = *p.LetterSpacing
	}
	if p.LineHeight != nil {
		out.LineHeight = *p.LineHeight
	}
	if p.Outline != nil {
		ol := *p.Outline
		out.Outline = &ol
	}
	if p.ClearOutline {
		out.Outline = nil
	}
	if p.Shadow != nil {
		sh := *p.Shadow
		out.Shadow = &sh
	}
	if p.ClearShadow {
		out.Shadow = nil
	}
	return out
}

// IsZero 报告补丁是否不包含任何修改。
func (p StylePatch) IsZero() bool {
	return p.Family == nil && p.Size == nil && p.Weight == nil &&
		p.Italic == nil && p.Color == nil && p.Background == nil &&
		p.Underline == nil && p.Strikethrough == nil &&
		p.LetterSpacing == nil && p.LineHeight == nil &&
		p.Outline == nil && p.Shadow == nil &&
		!p.ClearBackground && !p.ClearOutline && !p.ClearShadow
}
