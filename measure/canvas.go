package measure

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/ByLCY/inkwell/document"
	"github.com/ByLCY/inkwell/layout"
)

// Resource 既可用字节也可用路径提供字体文件。
type Resource struct {
	Bytes []byte
	Path  string
}

// CanvasOptions 配置 canvas 测量后端。
type CanvasOptions struct {
	BaseDir string
	// Fonts 按字体族名注入字体文件；样式中的 Family 在此查找。
	Fonts map[string]Resource
}

// Canvas 是基于 github.com/tdewolff/canvas 的真实字体测量后端。
// 字体面按 (族名, 字重, 斜体) 加锁缓存；字体缺失或加载失败时
// 退化为按字号估算，使测量对任何输入都保持全函数。
//
// 约定：样式字号为 pt，TextWidth/Metrics 返回 mm；
// 调用方保持容器尺寸与测量结果同单位即可。
type Canvas struct {
	baseDir string
	blobs   map[string][]byte

	mu       sync.Mutex
	families map[string]*canvas.FontFamily
}

var _ layout.Measurer = (*Canvas)(nil)

// NewCanvas 创建 canvas 测量后端并摄取注入的字体资源。
func NewCanvas(opts CanvasOptions) *Canvas {
	c := &Canvas{
		baseDir:  opts.BaseDir,
		blobs:    map[string][]byte{},
		families: map[string]*canvas.FontFamily{},
	}
	for name, res := range opts.Fonts {
		if name == "" {
			continue
		}
		if len(res.Bytes) > 0 {
			c.blobs[name] = res.Bytes
			continue
		}
		if res.Path != "" {
			// 读取失败在实际使用时再暴露为估算退化。
			data, _ := os.ReadFile(c.resolvePath(res.Path))
			if len(data) > 0 {
				c.blobs[name] = data
			}
		}
	}
	return c
}

func (c *Canvas) resolvePath(path string) string {
	if filepath.IsAbs(path) || c.baseDir == "" {
		return path
	}
	return filepath.Join(c.baseDir, path)
}

// Advance 实现 layout.Measurer：单字符步进宽度加字距。
func (c *Canvas) Advance(r rune, style document.Style) float64 {
	face, err := c.fontFace(style)
	if err != nil {
		// 字体不可用时按字号估算（每字符 0.55 倍字号）。
		return style.Size*0.55 + style.LetterSpacing
	}
	return face.TextWidth(string(r)) + style.LetterSpacing
}

// Metrics 实现 layout.Measurer。
func (c *Canvas) Metrics(style document.Style) layout.FontMetrics {
	face, err := c.fontFace(style)
	if err != nil {
		return layout.FontMetrics{Ascent: style.Size * 0.8, Descent: style.Size * 0.2}
	}
	m := face.Metrics()
	return layout.FontMetrics{Ascent: m.Ascent, Descent: m.Descent}
}

func (c *Canvas) fontFace(style document.Style) (*canvas.FontFace, error) {
	fs := fontStyle(style)
	family, err := c.ensureFamily(style.Family, fs)
	if err != nil {
		return nil, err
	}
	return family.Face(style.Size, canvas.Black, fs, canvas.FontNormal), nil
}

// ensureFamily 按 (族名, 样式位) 缓存字体族，首次访问时加载字体文件。
func (c *Canvas) ensureFamily(name string, fs canvas.FontStyle) (*canvas.FontFamily, error) {
	key := fmt.Sprintf("%s|%d", name, int(fs))
	c.mu.Lock()
	defer c.mu.Unlock()

	if family, ok := c.families[key]; ok {
		if family == nil {
			return nil, fmt.Errorf("字体 %s 不可用", name)
		}
		return family, nil
	}

	data, err := c.fontBytes(name)
	if err != nil {
		c.families[key] = nil // 记住失败，避免反复读盘
		return nil, err
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, fs); err != nil {
		c.families[key] = nil
		return nil, fmt.Errorf("加载字体 %s 失败: %w", name, err)
	}
	c.families[key] = family
	return family, nil
}

func (c *Canvas) fontBytes(name string) ([]byte, error) {
	if blob, ok := c.blobs[name]; ok {
		return blob, nil
	}
	// 未注入时尝试按族名猜测常见文件名。
	for _, ext := range []string{".ttf", ".otf"} {
		data, err := os.ReadFile(c.resolvePath(name + ext))
		if err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("字体 %s 未注入且无法从 %s 加载", name, c.baseDir)
}

// fontStyle 将字重与斜体映射到 canvas 的样式位。
func fontStyle(style document.Style) canvas.FontStyle {
	var fs canvas.FontStyle
	switch {
	case style.Weight >= 900:
		fs = canvas.FontBlack
	case style.Weight >= 800:
		fs = canvas.FontExtraBold
	case style.Weight >= 700:
		fs = canvas.FontBold
	case style.Weight >= 600:
		fs = canvas.FontSemiBold
	case style.Weight >= 500:
		fs = canvas.FontMedium
	case style.Weight > 0 && style.Weight <= 300:
		fs = canvas.FontLight
	default:
		fs = canvas.FontRegular
	}
	if style.Italic {
		fs |= canvas.FontItalic
	}
	return fs
}
