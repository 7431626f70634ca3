// Package markup 提供一个小型文档构建 DSL：声明样式（支持 extends
// 继承）、文本段、显式换行与列表项，解析后构建为富文本文档。
// 供命令行工具与测试以可读文本描述带样式的文档。
package markup

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	markupLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})`},
		{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Colon", Pattern: `:`},
		{Name: "Semi", Pattern: `;`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(markupLexer),
		participle.Elide("Whitespace", "LineComment"),
	)
)

// File 是标记文本的根节点：单个 doc 块。
type File struct {
	Pos  lexer.Position `parser:"" json:"-"`
	Body *Block         `parser:"Newline* 'doc' @@ Newline*"`
}

// Block 是花括号包围的语句列表。
type Block struct {
	Statements []*Statement `parser:"'{' Newline* ( @@ ( Semi | Newline )* )* '}'"`
}

// Statement 是块内的一条语句：赋值、命令或裸文本。
type Statement struct {
	Assignment *Assignment  `parser:"  @@"`
	Command    *Command     `parser:"| @@"`
	Text       *TextLiteral `parser:"| @@"`
}

// Assignment 使用冒号语法（key: value）。
type Assignment struct {
	Key   string `parser:"@Ident"`
	Value *Value `parser:"Colon Newline* @@"`
}

// Command 描述构建指令（style/text/break/bullet/number）。
type Command struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Name  string         `parser:"@Ident"`
	Args  []*Arg         `parser:"@@*"`
	Block *Block         `parser:"( Newline* @@ )?"`
}

// Arg 是命令参数：标识符或数字。
type Arg struct {
	Ident  *string `parser:"  @Ident"`
	Number *string `parser:"| @Number"`
}

// Text 返回参数的文本形式。
func (a *Arg) Text() string {
	switch {
	case a == nil:
		return ""
	case a.Ident != nil:
		return *a.Ident
	case a.Number != nil:
		return *a.Number
	default:
		return ""
	}
}

// TextLiteral 是块内的裸字符串语句。
type TextLiteral struct {
	Value StringLiteral `parser:"@String"`
}

// Value 表示属性值。
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Ident  *string        `parser:"| @Ident"`
}

// Text 返回值的文本形式，供属性解析统一处理。
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// StringLiteral 在捕获时按 Go 规则去引号。
type StringLiteral string

// Capture 实现 participle.Capture。
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("字符串字面量缺少内容")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// ParseFile 仅解析标记文本，不执行构建。
func ParseFile(r io.Reader) (*File, error) {
	return fileParser.Parse("", r)
}

// ParseFileString 从字符串解析标记文本。
func ParseFileString(input string) (*File, error) {
	return fileParser.ParseString("", input)
}
