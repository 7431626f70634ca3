package markup

import (
	"strings"
	"testing"

	"github.com/ByLCY/inkwell/document"
)

func mustBuild(t *testing.T, input string, data any) document.Document {
	t.Helper()
	doc, err := ParseStringWithData(input, data)
	if err != nil {
		t.Fatalf("解析标记文本失败: %v", err)
	}
	return doc
}

func TestBuildPlainTextAndDocProps(t *testing.T) {
	doc := mustBuild(t, `doc {
  align: center
  valign: bottom
  padding: 12

  text { "hello" }
  break
  text { "world" }
}`, nil)

	if doc.PlainText() != "hello\nworld" {
		t.Fatalf("文本错误: %q", doc.PlainText())
	}
	if doc.Align != document.AlignCenter || doc.VAlign != document.VAlignBottom || doc.Padding != 12 {
		t.Fatalf("文档属性错误: %#v", doc)
	}
}

func TestBuildStyledTextWithExtends(t *testing.T) {
	doc := mustBuild(t, `doc {
  style Title { size: 24 weight: bold }
  style Warn extends Title { color: #cc0000 italic: true }

  text Warn { "careful" }
  text { " now" }
}`, nil)

	st := doc.StyleAt(0)
	if st.Size != 24 || !st.Bold() || !st.Italic {
		t.Fatalf("继承样式未生效: %#v", st)
	}
	if st.Color != (document.Color{R: 0xCC, G: 0, B: 0}) {
		t.Fatalf("颜色解析错误: %#v", st.Color)
	}
	// 后续无样式段回落到默认样式，形成第二个 span。
	if len(doc.Spans) != 2 {
		t.Fatalf("应为 2 个 span，实际 %d", len(doc.Spans))
	}
	if doc.StyleAt(8).Bold() {
		t.Fatalf("无样式段不应继承前段样式")
	}
}

func TestBuildRejectsStyleCycle(t *testing.T) {
	_, err := ParseString(`doc {
  style A extends B { size: 12 }
  style B extends A { size: 14 }
  text A { "x" }
}`)
	if err == nil || !strings.Contains(err.Error(), "循环继承") {
		t.Fatalf("循环继承应报错，实际 %v", err)
	}
}

func TestBuildRejectsUnknownReferences(t *testing.T) {
	if _, err := ParseString(`doc { text Missing { "x" } }`); err == nil {
		t.Fatalf("未定义样式应报错")
	}
	if _, err := ParseString(`doc { style A extends Nope { size: 12 } }`); err == nil {
		t.Fatalf("未定义基样式应报错")
	}
	if _, err := ParseString(`doc { frobnicate }`); err == nil {
		t.Fatalf("未知命令应报错")
	}
	if _, err := ParseString(`doc { align: diagonal }`); err == nil {
		t.Fatalf("非法对齐应报错")
	}
}

func TestBuildListItemsGetOwnLinesAndNumbers(t *testing.T) {
	doc := mustBuild(t, `doc {
  text { "intro" }
  number 0 { "first" }
  number 0 { "second" }
  bullet 1 { "detail" }
  number 0 { "third" }
}`, nil)

	if doc.PlainText() != "intro\nfirst\nsecond\ndetail\nthird" {
		t.Fatalf("列表项应各占一行: %q", doc.PlainText())
	}
	for line, want := range map[int]int{1: 1, 2: 2, 4: 3} {
		it, ok := doc.ListItemAtLine(line)
		if !ok || it.Kind != document.ListNumber || it.Index != want {
			t.Fatalf("第 %d 行应为有序项序号 %d: %#v", line, want, it)
		}
	}
	it, ok := doc.ListItemAtLine(3)
	if !ok || it.Kind != document.ListBullet || it.Level != 1 {
		t.Fatalf("第 3 行应为层级 1 的无序项: %#v", it)
	}
}

func TestBuildStyleProps(t *testing.T) {
	doc := mustBuild(t, `doc {
  style Fancy {
    family: "Noto Sans"
    size: 18
    weight: 600
    underline: true
    background: #ff0
    letter-spacing: 1.5
    line-height: 1.4
    outline-color: #333
    outline-width: 0.5
    shadow-color: #000
    shadow-blur: 2
    shadow-x: 1
    shadow-y: -1
  }
  text Fancy { "x" }
}`, nil)

	st := doc.StyleAt(0)
	if st.Family != "Noto Sans" || st.Size != 18 || st.Weight != 600 || !st.Underline {
		t.Fatalf("基础属性错误: %#v", st)
	}
	if st.Background == nil || *st.Background != (document.Color{R: 255, G: 255, B: 0}) {
		t.Fatalf("三位十六进制背景色错误: %#v", st.Background)
	}
	if st.LetterSpacing != 1.5 || st.LineHeight != 1.4 {
		t.Fatalf("间距属性错误: %#v", st)
	}
	if st.Outline == nil || st.Outline.Width != 0.5 {
		t.Fatalf("描边属性错误: %#v", st.Outline)
	}
	if st.Shadow == nil || st.Shadow.Blur != 2 || st.Shadow.OffsetY != -1 {
		t.Fatalf("投影属性错误: %#v", st.Shadow)
	}
}

func TestBuildRejectsBadPropValues(t *testing.T) {
	bad := []string{
		`doc { style A { size: -4 } text A { "x" } }`,
		`doc { style A { weight: 1200 } text A { "x" } }`,
		`doc { style A { italic: maybe } text A { "x" } }`,
		`doc { style A { color: #12345 } text A { "x" } }`,
		`doc { style A { frobs: 1 } text A { "x" } }`,
	}
	for _, input := range bad {
		if _, err := ParseString(input); err == nil {
			t.Fatalf("非法属性应报错: %s", input)
		}
	}
}

func TestInterpolateResolvesPaths(t *testing.T) {
	data := map[string]any{
		"user": map[string]any{"name": "王小明"},
		"items": []any{
			map[string]any{"qty": 3.0},
			map[string]any{"qty": 5.0},
		},
	}
	got, err := Interpolate("你好 ${user.name}，共 ${items[1].qty} 件", data)
	if err != nil {
		t.Fatalf("插值失败: %v", err)
	}
	if got != "你好 王小明，共 5 件" {
		t.Fatalf("插值结果错误: %q", got)
	}
}

func TestInterpolateErrors(t *testing.T) {
	data := map[string]any{"a": []any{1.0}}
	cases := []string{
		"${missing}",
		"${a[5]}",
		"${a[x]}",
		"${a.b}",
		"${unclosed",
		"${}",
	}
	for _, text := range cases {
		if _, err := Interpolate(text, data); err == nil {
			t.Fatalf("表达式 %q 应报错", text)
		}
	}
	// data 为 nil 时不做插值，原样返回。
	if got, err := Interpolate("${missing}", nil); err != nil || got != "${missing}" {
		t.Fatalf("nil 数据应原样返回: %q %v", got, err)
	}
}

func TestBuildWithDataBindsText(t *testing.T) {
	doc := mustBuild(t, `doc { text { "total: ${n}" } }`, map[string]any{"n": 42.0})
	if doc.PlainText() != "total: 42" {
		t.Fatalf("绑定结果错误: %q", doc.PlainText())
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	bad := []string{
		``,
		`doc`,
		`doc { text { "unterminated }`,
		`{ text { "no doc" } }`,
	}
	for _, input := range bad {
		if _, err := ParseFileString(input); err == nil {
			t.Fatalf("畸形输入应解析失败: %q", input)
		}
	}
}
