package markup

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ByLCY/inkwell/document"
)

// Parse 解析标记文本并构建文档。
func Parse(r io.Reader) (document.Document, error) {
	file, err := ParseFile(r)
	if err != nil {
		return document.New(), err
	}
	return Build(file, nil)
}

// ParseString 从字符串解析并构建文档。
func ParseString(input string) (document.Document, error) {
	return ParseStringWithData(input, nil)
}

// ParseStringWithData 解析并构建文档，data 非 nil 时对文本做 ${path} 插值。
func ParseStringWithData(input string, data any) (document.Document, error) {
	file, err := ParseFileString(input)
	if err != nil {
		return document.New(), err
	}
	return Build(file, data)
}

// Build 将语法树构建为文档。先收集并解析全部样式声明
// （extends 以 DFS 展开，检测循环继承），再按语句顺序生成内容。
func Build(file *File, data any) (document.Document, error) {
	if file == nil || file.Body == nil {
		return document.New(), fmt.Errorf("标记文本缺少 doc 块")
	}
	b := &builder{
		doc:    document.New(),
		styles: map[string]document.StylePatch{},
		data:   data,
	}
	if err := b.collectStyles(file.Body); err != nil {
		return document.New(), err
	}
	if err := b.run(file.Body); err != nil {
		return document.New(), err
	}
	return b.doc.Renumber(), nil
}

type rawStyle struct {
	base  string
	props []*Assignment
	pos   lexer.Position
}

type builder struct {
	doc    document.Document
	raw    map[string]rawStyle
	styles map[string]document.StylePatch
	data   any
}

// collectStyles 先于内容遍历全部 style 命令，使文本段可以引用
// 文件中任意位置声明的样式。
func (b *builder) collectStyles(block *Block) error {
	b.raw = map[string]rawStyle{}
	for _, st := range block.Statements {
		cmd := st.Command
		if cmd == nil || cmd.Name != "style" {
			continue
		}
		if len(cmd.Args) == 0 || cmd.Args[0].Ident == nil {
			return fmt.Errorf("%s: style 命令缺少样式名", cmd.Pos)
		}
		name := cmd.Args[0].Text()
		if _, dup := b.raw[name]; dup {
			return fmt.Errorf("%s: 样式 %q 重复声明", cmd.Pos, name)
		}
		base := ""
		switch len(cmd.Args) {
		case 1:
		case 3:
			if cmd.Args[1].Text() != "extends" {
				return fmt.Errorf("%s: 样式 %q 的参数应为 extends <基样式>", cmd.Pos, name)
			}
			base = cmd.Args[2].Text()
		default:
			return fmt.Errorf("%s: 样式 %q 的参数形式不合法", cmd.Pos, name)
		}
		if cmd.Block == nil {
			return fmt.Errorf("%s: 样式 %q 缺少属性块", cmd.Pos, name)
		}
		var props []*Assignment
		for _, inner := range cmd.Block.Statements {
			if inner.Assignment == nil {
				return fmt.Errorf("%s: 样式 %q 的属性块只允许 key: value", cmd.Pos, name)
			}
			props = append(props, inner.Assignment)
		}
		b.raw[name] = rawStyle{base: base, props: props, pos: cmd.Pos}
	}

	state := map[string]int{} // 0 未访问 1 访问中 2 完成
	for name := range b.raw {
		if _, err := b.resolveStyle(name, state); err != nil {
			return err
		}
	}
	return nil
}

// resolveStyle 以 DFS 展开 extends 链：先解析基样式补丁，
// 再用子样式的属性覆盖。访问中再次进入即为循环继承。
func (b *builder) resolveStyle(name string, state map[string]int) (document.StylePatch, error) {
	if patch, ok := b.styles[name]; ok {
		return patch, nil
	}
	raw, ok := b.raw[name]
	if !ok {
		return document.StylePatch{}, fmt.Errorf("未定义的样式 %q", name)
	}
	switch state[name] {
	case 1:
		return document.StylePatch{}, fmt.Errorf("%s: 样式 %q 存在循环继承", raw.pos, name)
	case 2:
		return b.styles[name], nil
	}
	state[name] = 1

	patch := document.StylePatch{}
	if raw.base != "" {
		base, err := b.resolveStyle(raw.base, state)
		if err != nil {
			return document.StylePatch{}, err
		}
		patch = base
	}
	own, err := parseStyleProps(raw.props)
	if err != nil {
		return document.StylePatch{}, fmt.Errorf("%s: 样式 %q: %w", raw.pos, name, err)
	}
	patch = overlayPatch(patch, own)

	state[name] = 2
	b.styles[name] = patch
	return patch, nil
}

// run 按语句顺序执行内容命令与文档级属性赋值。
func (b *builder) run(block *Block) error {
	for _, st := range block.Statements {
		switch {
		case st.Assignment != nil:
			if err := b.applyDocProp(st.Assignment); err != nil {
				return err
			}
		case st.Command != nil:
			if err := b.runCommand(st.Command); err != nil {
				return err
			}
		case st.Text != nil:
			if err := b.appendText(string(st.Text.Value), nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *builder) applyDocProp(a *Assignment) error {
	val := a.Value.Text()
	switch a.Key {
	case "align":
		switch document.Align(val) {
		case document.AlignLeft, document.AlignCenter, document.AlignRight, document.AlignJustify:
			b.doc.Align = document.Align(val)
		default:
			return fmt.Errorf("未知的对齐方式 %q", val)
		}
	case "valign":
		switch document.VAlign(val) {
		case document.VAlignTop, document.VAlignMiddle, document.VAlignBottom:
			b.doc.VAlign = document.VAlign(val)
		default:
			return fmt.Errorf("未知的垂直对齐方式 %q", val)
		}
	case "padding":
		pad, err := strconv.ParseFloat(val, 64)
		if err != nil || pad < 0 {
			return fmt.Errorf("内边距 %q 不合法", val)
		}
		b.doc.Padding = pad
	default:
		return fmt.Errorf("未知的文档属性 %q", a.Key)
	}
	return nil
}

func (b *builder) runCommand(cmd *Command) error {
	switch cmd.Name {
	case "style":
		return nil // collectStyles 已处理
	case "text":
		var patch *document.StylePatch
		if len(cmd.Args) > 1 {
			return fmt.Errorf("%s: text 命令最多接受一个样式名", cmd.Pos)
		}
		if len(cmd.Args) == 1 {
			p, ok := b.styles[cmd.Args[0].Text()]
			if !ok {
				return fmt.Errorf("%s: 未定义的样式 %q", cmd.Pos, cmd.Args[0].Text())
			}
			patch = &p
		}
		return b.appendText(blockText(cmd.Block), patch)
	case "break":
		b.appendBreak()
		return nil
	case "bullet", "number":
		return b.listItem(cmd)
	default:
		return fmt.Errorf("%s: 未知命令 %q", cmd.Pos, cmd.Name)
	}
}

// listItem 在新的源行上追加列表项文本，并登记该行的列表标记。
// 层级参数缺省为 0，超过上限时钳制。
func (b *builder) listItem(cmd *Command) error {
	level := 0
	var patch *document.StylePatch
	for _, arg := range cmd.Args {
		switch {
		case arg.Number != nil:
			n, err := strconv.Atoi(*arg.Number)
			if err != nil || n < 0 {
				return fmt.Errorf("%s: 列表层级 %q 不合法", cmd.Pos, *arg.Number)
			}
			level = n
		case arg.Ident != nil:
			p, ok := b.styles[*arg.Ident]
			if !ok {
				return fmt.Errorf("%s: 未定义的样式 %q", cmd.Pos, *arg.Ident)
			}
			patch = &p
		}
	}
	if level > document.MaxListLevel {
		level = document.MaxListLevel
	}

	// 列表项独占一行：前面已有内容且未以换行结尾时先补换行。
	plain := b.doc.PlainText()
	if plain != "" && !strings.HasSuffix(plain, "\n") {
		b.appendBreak()
	}
	line := strings.Count(b.doc.PlainText(), "\n")

	kind := document.ListBullet
	if cmd.Name == "number" {
		kind = document.ListNumber
	}
	if b.doc.Lists == nil {
		b.doc.Lists = map[int]document.ListItem{}
	}
	b.doc.Lists[line] = document.ListItem{Kind: kind, Level: level}

	return b.appendText(blockText(cmd.Block), patch)
}

// appendText 追加一段文本。段样式总是"默认样式 + 声明的补丁"，
// 不继承插入点样式：标记文本里未声明样式即为默认样式。
func (b *builder) appendText(text string, patch *document.StylePatch) error {
	if text == "" {
		return nil
	}
	text, err := Interpolate(text, b.data)
	if err != nil {
		return err
	}
	st := document.DefaultStyle()
	if patch != nil {
		st = patch.Apply(st)
	}
	full := absolutePatch(st)
	b.doc = b.doc.Insert(b.doc.Length(), text, &full)
	return nil
}

// appendBreak 追加换行。换行沿用前一段样式，与其合并为同一 span。
func (b *builder) appendBreak() {
	b.doc = b.doc.Insert(b.doc.Length(), "\n", nil)
}

// absolutePatch 把完整样式展开为逐字段补丁，叠加到任何基准样式上
// 都得到同一结果。
func absolutePatch(st document.Style) document.StylePatch {
	p := document.StylePatch{
		Family:        &st.Family,
		Size:          &st.Size,
		Weight:        &st.Weight,
		Italic:        &st.Italic,
		Color:         &st.Color,
		Underline:     &st.Underline,
		Strikethrough: &st.Strikethrough,
		LetterSpacing: &st.LetterSpacing,
		LineHeight:    &st.LineHeight,
	}
	if st.Background != nil {
		p.Background = st.Background
	} else {
		p.ClearBackground = true
	}
	if st.Outline != nil {
		p.Outline = st.Outline
	} else {
		p.ClearOutline = true
	}
	if st.Shadow != nil {
		p.Shadow = st.Shadow
	} else {
		p.ClearShadow = true
	}
	return p
}

// blockText 拼接块内全部字符串语句。
func blockText(block *Block) string {
	if block == nil {
		return ""
	}
	var sb strings.Builder
	for _, st := range block.Statements {
		if st.Text != nil {
			sb.WriteString(string(st.Text.Value))
		}
	}
	return sb.String()
}

// overlayPatch 以 child 的非空字段覆盖 parent，Clear 标记做或运算。
func overlayPatch(parent, child document.StylePatch) document.StylePatch {
	out := parent
	if child.Family != nil {
		out.Family = child.Family
	}
	if child.Size != nil {
		out.Size = child.Size
	}
	if child.Weight != nil {
		out.Weight = child.Weight
	}
	if child.Italic != nil {
		out.Italic = child.Italic
	}
	if child.Color != nil {
		out.Color = child.Color
	}
	if child.Background != nil {
		out.Background = child.Background
	}
	if child.Underline != nil {
		out.Underline = child.Underline
	}
	if child.Strikethrough != nil {
		out.Strikethrough = child.Strikethrough
	}
	if child.LetterSpacing != nil {
		out.LetterSpacing = child.LetterSpacing
	}
	if child.LineHeight != nil {
		out.LineHeight = child.LineHeight
	}
	if child.Outline != nil {
		out.Outline = child.Outline
	}
	if child.Shadow != nil {
		out.Shadow = child.Shadow
	}
	out.ClearBackground = out.ClearBackground || child.ClearBackground
	out.ClearOutline = out.ClearOutline || child.ClearOutline
	out.ClearShadow = out.ClearShadow || child.ClearShadow
	return out
}

// parseStyleProps 将属性赋值解析为样式补丁。
func parseStyleProps(props []*Assignment) (document.StylePatch, error) {
	patch := document.StylePatch{}
	ensureOutline := func() *document.Outline {
		if patch.Outline == nil {
			patch.Outline = &document.Outline{}
		}
		return patch.Outline
	}
	ensureShadow := func() *document.Shadow {
		if patch.Shadow == nil {
			patch.Shadow = &document.Shadow{}
		}
		return patch.Shadow
	}

	for _, a := range props {
		val := a.Value.Text()
		switch a.Key {
		case "family":
			f := val
			patch.Family = &f
		case "size":
			v, err := parsePositive(val)
			if err != nil {
				return patch, fmt.Errorf("size: %w", err)
			}
			patch.Size = &v
		case "weight":
			w, err := parseWeight(val)
			if err != nil {
				return patch, err
			}
			patch.Weight = &w
		case "italic":
			v, err := parseBool(val)
			if err != nil {
				return patch, fmt.Errorf("italic: %w", err)
			}
			patch.Italic = &v
		case "underline":
			v, err := parseBool(val)
			if err != nil {
				return patch, fmt.Errorf("underline: %w", err)
			}
			patch.Underline = &v
		case "strikethrough":
			v, err := parseBool(val)
			if err != nil {
				return patch, fmt.Errorf("strikethrough: %w", err)
			}
			patch.Strikethrough = &v
		case "color":
			c, err := parseColor(val)
			if err != nil {
				return patch, err
			}
			patch.Color = &c
		case "background":
			if val == "none" {
				patch.ClearBackground = true
				continue
			}
			c, err := parseColor(val)
			if err != nil {
				return patch, err
			}
			patch.Background = &c
		case "letter-spacing":
			v, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return patch, fmt.Errorf("letter-spacing %q 不合法", val)
			}
			patch.LetterSpacing = &v
		case "line-height":
			v, err := parsePositive(val)
			if err != nil {
				return patch, fmt.Errorf("line-height: %w", err)
			}
			patch.LineHeight = &v
		case "outline-color":
			c, err := parseColor(val)
			if err != nil {
				return patch, err
			}
			ensureOutline().Color = c
		case "outline-width":
			v, err := parsePositive(val)
			if err != nil {
				return patch, fmt.Errorf("outline-width: %w", err)
			}
			ensureOutline().Width = v
		case "shadow-color":
			c, err := parseColor(val)
			if err != nil {
				return patch, err
			}
			ensureShadow().Color = c
		case "shadow-blur":
			v, err := parsePositive(val)
			if err != nil {
				return patch, fmt.Errorf("shadow-blur: %w", err)
			}
			ensureShadow().Blur = v
		case "shadow-x":
			v, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return patch, fmt.Errorf("shadow-x %q 不合法", val)
			}
			ensureShadow().OffsetX = v
		case "shadow-y":
			v, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return patch, fmt.Errorf("shadow-y %q 不合法", val)
			}
			ensureShadow().OffsetY = v
		default:
			return patch, fmt.Errorf("未知的样式属性 %q", a.Key)
		}
	}
	return patch, nil
}

func parsePositive(val string) (float64, error) {
	v, err := strconv.ParseFloat(val, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("数值 %q 不合法", val)
	}
	return v, nil
}

func parseBool(val string) (bool, error) {
	switch val {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("布尔值 %q 不合法", val)
	}
}

func parseWeight(val string) (int, error) {
	switch val {
	case "normal":
		return document.WeightNormal, nil
	case "bold":
		return document.WeightBold, nil
	}
	w, err := strconv.Atoi(val)
	if err != nil || w < 100 || w > 900 {
		return 0, fmt.Errorf("字重 %q 不合法", val)
	}
	return w, nil
}

// parseColor 解析 #rgb 或 #rrggbb 颜色。
func parseColor(val string) (document.Color, error) {
	if !strings.HasPrefix(val, "#") {
		return document.Color{}, fmt.Errorf("颜色 %q 应为 #rgb 或 #rrggbb", val)
	}
	hex := val[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return document.Color{}, fmt.Errorf("颜色 %q 应为 #rgb 或 #rrggbb", val)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return document.Color{}, fmt.Errorf("颜色 %q 不合法", val)
	}
	return document.Color{
		R: int(n >> 16 & 0xFF),
		G: int(n >> 8 & 0xFF),
		B: int(n & 0xFF),
	}, nil
}
