package document

import (
	"encoding/json"
	"testing"
)

// styledFixture 构造带混合样式、对齐与列表的文档供序列化测试。
func styledFixture() Document {
	d := FromText("hello world\nsecond", DefaultStyle())
	d = d.ToggleBold(0, 5)
	bg := Color{R: 255, G: 240, B: 200}
	d = d.ApplyStyle(6, 11, StylePatch{Background: &bg})
	d.Align = AlignCenter
	d.VAlign = VAlignBottom
	d.Padding = 8
	return d.ToggleListForLines(1, 1, ListNumber)
}

func TestSnapshotRoundTrip(t *testing.T) {
	d := styledFixture()
	back := FromSnapshot(d.Snapshot())

	if back.PlainText() != d.PlainText() {
		t.Fatalf("往返后文本不一致: %q vs %q", back.PlainText(), d.PlainText())
	}
	if back.Align != AlignCenter || back.VAlign != VAlignBottom || back.Padding != 8 {
		t.Fatalf("往返后文档属性丢失: %#v", back)
	}
	if len(back.Spans) != len(d.Spans) {
		t.Fatalf("往返后 span 数不一致: %d vs %d", len(back.Spans), len(d.Spans))
	}
	for i := range d.Spans {
		if !back.Spans[i].Style.Equal(d.Spans[i].Style) {
			t.Fatalf("第 %d 个 span 样式往返后不一致", i)
		}
	}
	it, ok := back.ListItemAtLine(1)
	if !ok || it.Kind != ListNumber || it.Index != 1 {
		t.Fatalf("列表项往返后丢失: %#v", it)
	}
}

func TestSnapshotListsAreSortedByLine(t *testing.T) {
	d := FromText("a\nb\nc", DefaultStyle()).ToggleListForLines(0, 2, ListBullet)
	s := d.Snapshot()
	for i := 1; i < len(s.Lists); i++ {
		if s.Lists[i-1].Line >= s.Lists[i].Line {
			t.Fatalf("列表条目应按行号升序: %#v", s.Lists)
		}
	}
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	d := styledFixture()
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("序列化失败: %v", err)
	}
	var back Document
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("反序列化失败: %v", err)
	}
	if back.PlainText() != d.PlainText() || back.Align != d.Align {
		t.Fatalf("JSON 往返后文档不一致")
	}
	if !back.StyleAt(0).Bold() {
		t.Fatalf("JSON 往返后样式丢失")
	}
}

func TestFromSnapshotRestoresInvariants(t *testing.T) {
	// 快照里带相邻同样式 span 与空 span：重建时必须恢复规范化。
	st := DefaultStyle()
	s := Snapshot{Spans: []Span{
		{ID: "a", Text: "he", Style: st},
		{ID: "b", Text: "", Style: st},
		{ID: "c", Text: "llo", Style: st},
	}}
	d := FromSnapshot(s)
	if len(d.Spans) != 1 || d.PlainText() != "hello" {
		t.Fatalf("重建后应合并为单 span: %#v", d.Spans)
	}
	if d.Align != AlignLeft || d.VAlign != VAlignTop {
		t.Fatalf("缺省对齐应回落到左上: %#v", d)
	}
}

func TestUnmarshalInvalidJSONFails(t *testing.T) {
	var d Document
	if err := d.UnmarshalJSON([]byte(`{"spans": 42}`)); err == nil {
		t.Fatalf("畸形快照应报错")
	}
}
