package measure

import (
	"github.com/mattn/go-runewidth"

	"github.com/ByLCY/inkwell/document"
	"github.com/ByLCY/inkwell/layout"
)

// Mono 是基于 go-runewidth 的确定性等宽测量后端：
// 按东亚宽度语义每个字符占 1 或 2 个单元格，不依赖字体文件。
// 适合测试、快照对比与文本界面宿主。
type Mono struct {
	// CellRatio 是单元格宽度与字号的比值，<=0 时取 0.6。
	CellRatio float64
}

var _ layout.Measurer = Mono{}

// NewMono 创建缺省参数的等宽后端。
func NewMono() Mono { return Mono{} }

func (m Mono) ratio() float64 {
	if m.CellRatio <= 0 {
		return 0.6
	}
	return m.CellRatio
}

// Advance 实现 layout.Measurer：宽度 = 单元格数 × 比值 × 字号 + 字距。
func (m Mono) Advance(r rune, style document.Style) float64 {
	cells := runewidth.RuneWidth(r)
	return float64(cells)*m.ratio()*style.Size + style.LetterSpacing
}

// Metrics 实现 layout.Measurer：上升/下降部按字号的固定比例估算。
func (m Mono) Metrics(style document.Style) layout.FontMetrics {
	return layout.FontMetrics{
		Ascent:  style.Size * 0.8,
		Descent: style.Size * 0.2,
	}
}
