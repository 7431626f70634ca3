package layout

import "github.com/ByLCY/inkwell/document"

// FontMetrics 描述某一样式下字体基线以上/以下的高度。
type FontMetrics struct {
	Ascent  float64 `json:"ascent"`
	Descent float64 `json:"descent"`
}

// Measurer 是宿主渲染环境注入的字符测量能力：给定单个字符与样式
// 返回步进宽度，给定样式返回字体度量。对同一输入必须返回确定值。
// 重复测量是布局的主要开销，实现应按 (字符, 完整字体描述) 做缓存；
// 缓存可随时清空（例如字体加载完成后），只影响性能不影响结果。
type Measurer interface {
	Advance(r rune, style document.Style) float64
	Metrics(style document.Style) FontMetrics
}

// listIndentStep 是每级列表嵌套占用的水平缩进。
const listIndentStep = 24.0
