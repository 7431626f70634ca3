package measure

import (
	"sync"
	"testing"

	"github.com/ByLCY/inkwell/document"
	"github.com/ByLCY/inkwell/layout"
)

func TestMonoAdvanceFollowsEastAsianWidth(t *testing.T) {
	st := document.DefaultStyle() // 16pt，缺省单元格比值 0.6
	m := NewMono()

	if got := m.Advance('a', st); got != 9.6 {
		t.Fatalf("半角字符步进应为 9.6，实际 %g", got)
	}
	// 全角字符占两个单元格。
	if got := m.Advance('好', st); got != 19.2 {
		t.Fatalf("全角字符步进应为 19.2，实际 %g", got)
	}
}

func TestMonoHonorsLetterSpacingAndRatio(t *testing.T) {
	st := document.DefaultStyle()
	st.LetterSpacing = 2
	if got := NewMono().Advance('a', st); got != 11.6 {
		t.Fatalf("字距应叠加到步进上，实际 %g", got)
	}
	m := Mono{CellRatio: 0.5}
	st.LetterSpacing = 0
	if got := m.Advance('a', st); got != 8 {
		t.Fatalf("自定义比值步进应为 8，实际 %g", got)
	}
}

func TestMonoMetricsScaleWithSize(t *testing.T) {
	st := document.DefaultStyle()
	st.Size = 20
	fm := NewMono().Metrics(st)
	if fm.Ascent != 16 || fm.Descent != 4 {
		t.Fatalf("度量应随字号缩放: %#v", fm)
	}
}

// countingMeasurer 记录底层后端被调用的次数，用于验证缓存命中。
type countingMeasurer struct {
	mu       sync.Mutex
	advances int
	metrics  int
}

func (c *countingMeasurer) Advance(r rune, style document.Style) float64 {
	c.mu.Lock()
	c.advances++
	c.mu.Unlock()
	return float64(r)
}

func (c *countingMeasurer) Metrics(style document.Style) layout.FontMetrics {
	c.mu.Lock()
	c.metrics++
	c.mu.Unlock()
	return layout.FontMetrics{Ascent: style.Size, Descent: 1}
}

func TestCacheMemoizesPerRuneAndStyle(t *testing.T) {
	inner := &countingMeasurer{}
	c := NewCache(inner)
	st := document.DefaultStyle()

	for i := 0; i < 5; i++ {
		if got := c.Advance('x', st); got != float64('x') {
			t.Fatalf("缓存应透传底层结果，实际 %g", got)
		}
	}
	if inner.advances != 1 {
		t.Fatalf("同键重复测量应命中缓存，底层被调用 %d 次", inner.advances)
	}

	// 字号不同即为不同键。
	st2 := st
	st2.Size = 32
	c.Advance('x', st2)
	if inner.advances != 2 {
		t.Fatalf("不同样式应各自测量，底层被调用 %d 次", inner.advances)
	}

	c.Metrics(st)
	c.Metrics(st)
	if inner.metrics != 1 {
		t.Fatalf("度量缓存未命中，底层被调用 %d 次", inner.metrics)
	}
}

func TestCacheKeyIgnoresNonFontFields(t *testing.T) {
	inner := &countingMeasurer{}
	c := NewCache(inner)
	st := document.DefaultStyle()
	c.Advance('x', st)

	// 颜色、下划线等与字体描述无关的字段不应导致缓存失效。
	st.Color = document.Color{R: 255}
	st.Underline = true
	c.Advance('x', st)
	if inner.advances != 1 {
		t.Fatalf("非字体字段不应参与缓存键，底层被调用 %d 次", inner.advances)
	}

	// 字距参与字体描述。
	st.LetterSpacing = 3
	c.Advance('x', st)
	if inner.advances != 2 {
		t.Fatalf("字距变化应重新测量，底层被调用 %d 次", inner.advances)
	}
}

func TestCacheClearForcesRemeasure(t *testing.T) {
	inner := &countingMeasurer{}
	c := NewCache(inner)
	st := document.DefaultStyle()

	c.Advance('x', st)
	c.Clear()
	c.Advance('x', st)
	if inner.advances != 2 {
		t.Fatalf("清空后应重新测量，底层被调用 %d 次", inner.advances)
	}
}

func TestCanvasFallsBackWithoutFont(t *testing.T) {
	c := NewCanvas(CanvasOptions{BaseDir: t.TempDir()})
	st := document.DefaultStyle()

	// 字体缺失时退化为按字号估算，布局仍可推进。
	if got := c.Advance('a', st); got != st.Size*0.55 {
		t.Fatalf("缺字体步进应为估算值 %g，实际 %g", st.Size*0.55, got)
	}
	fm := c.Metrics(st)
	if fm.Ascent != st.Size*0.8 || fm.Descent != st.Size*0.2 {
		t.Fatalf("缺字体度量应为估算值: %#v", fm)
	}
}
