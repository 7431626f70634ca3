package layout

import "github.com/ByLCY/inkwell/document"

// 该文件定义布局结果类型，供渲染、坐标映射与调试 JSON 共用。
// 布局结果在每次文档或容器尺寸变化后整体重新生成，从不原地修改。

// Char 是定位后的单个字符：所属视觉行、绝对偏移与左上角坐标。
// 宽度为步进宽度，两端对齐时可能大于测量值（空白被拉伸）。
type Char struct {
	Rune   rune           `json:"rune"`
	SpanID string         `json:"spanId"`
	Index  int            `json:"index"`
	Line   int            `json:"line"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Width  float64        `json:"width"`
	Style  document.Style `json:"style"`
}

// Line 是折行后的一个视觉行。一条源行（\n 之间）换行后
// 可对应多条视觉行；Start 为行首字符的绝对偏移。
type Line struct {
	Chars      []Char             `json:"chars"`
	X          float64            `json:"x"` // 行内容起始横坐标（对齐后）
	Y          float64            `json:"y"`
	Height     float64            `json:"height"`
	Baseline   float64            `json:"baseline"` // 距行顶的基线偏移
	Width      float64            `json:"width"`    // 内容宽度
	Start      int                `json:"start"`
	SourceLine int                `json:"sourceLine"`
	ListItem   *document.ListItem `json:"listItem,omitempty"`
	Indent     float64            `json:"indent,omitempty"`
}

// Result 保存一次布局的全部输出：视觉行序列与跨行的扁平字符列表。
type Result struct {
	Lines         []Line  `json:"lines"`
	Chars         []Char  `json:"chars"`
	Width         float64 `json:"width"`  // 容器宽度
	Height        float64 `json:"height"` // 容器高度
	Padding       float64 `json:"padding"`
	ContentHeight float64 `json:"contentHeight"`
}

// CaretPos 是光标的绘制位置与高度。
type CaretPos struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Height float64 `json:"height"`
}

// Box 是选区高亮的单行矩形。
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
