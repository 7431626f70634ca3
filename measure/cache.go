// Package measure 提供布局引擎的字符测量后端：
// 基于 tdewolff/canvas 的真实字体测量、基于 go-runewidth 的
// 等宽测量，以及按 (字符, 字体描述) 记忆结果的缓存包装。
package measure

import (
	"fmt"
	"sync"

	"github.com/ByLCY/inkwell/document"
	"github.com/ByLCY/inkwell/layout"
)

// styleKey 生成样式的完整字体描述键（含字距）。
// 同键样式在任何确定性后端下测量结果相同。
func styleKey(s document.Style) string {
	return fmt.Sprintf("%s|%g|%d|%t|%g", s.Family, s.Size, s.Weight, s.Italic, s.LetterSpacing)
}

type advanceKey struct {
	r    rune
	font string
}

// Cache 包装任意测量后端并记忆其结果。缓存可随时 Clear
// （例如字体加载完成后失效旧值），清空只影响性能，不影响结果。
type Cache struct {
	inner layout.Measurer

	mu       sync.Mutex
	advances map[advanceKey]float64
	metrics  map[string]layout.FontMetrics
}

var _ layout.Measurer = (*Cache)(nil)

// NewCache 创建测量缓存。
func NewCache(inner layout.Measurer) *Cache {
	return &Cache{
		inner:    inner,
		advances: map[advanceKey]float64{},
		metrics:  map[string]layout.FontMetrics{},
	}
}

// Advance 实现 layout.Measurer。
func (c *Cache) Advance(r rune, style document.Style) float64 {
	key := advanceKey{r: r, font: styleKey(style)}
	c.mu.Lock()
	if w, ok := c.advances[key]; ok {
		c.mu.Unlock()
		return w
	}
	c.mu.Unlock()

	w := c.inner.Advance(r, style)

	c.mu.Lock()
	c.advances[key] = w
	c.mu.Unlock()
	return w
}

// Metrics 实现 layout.Measurer。
func (c *Cache) Metrics(style document.Style) layout.FontMetrics {
	key := styleKey(style)
	c.mu.Lock()
	if m, ok := c.metrics[key]; ok {
		c.mu.Unlock()
		return m
	}
	c.mu.Unlock()

	m := c.inner.Metrics(style)

	c.mu.Lock()
	c.metrics[key] = m
	c.mu.Unlock()
	return m
}

// Clear 清空全部记忆结果。
func (c *Cache) Clear() {
	c.mu.Lock()
	c.advances = map[advanceKey]float64{}
	c.metrics = map[string]layout.FontMetrics{}
	c.mu.Unlock()
}
