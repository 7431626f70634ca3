package document

import (
	"encoding/json"
	"fmt"
	"sort"
)

// 该文件提供文档与"纯值树"之间的序列化：控件层持久化/恢复文档
// （撤销历史、外部存储）时不依赖任何内部表示细节。

// ListEntry 将行号与列表项显式成对输出，替代不可序列化的映射。
type ListEntry struct {
	Line int      `json:"line"`
	Item ListItem `json:"item"`
}

// Snapshot 是文档的纯值表示：有序 span 列表（样式字段全部显式）、
// 对齐、内边距与升序排列的列表条目。
type Snapshot struct {
	Spans   []Span      `json:"spans"`
	Align   Align       `json:"align"`
	VAlign  VAlign      `json:"valign"`
	Padding float64     `json:"padding"`
	Lists   []ListEntry `json:"lists,omitempty"`
}

// Snapshot 导出文档的纯值表示，列表条目按行号升序排列。
func (d Document) Snapshot() Snapshot {
	spans := make([]Span, len(d.Spans))
	copy(spans, d.Spans)

	entries := make([]ListEntry, 0, len(d.Lists))
	for line, it := range d.Lists {
		entries = append(entries, ListEntry{Line: line, Item: it})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Line < entries[j].Line })

	return Snapshot{
		Spans:   spans,
		Align:   d.Align,
		VAlign:  d.VAlign,
		Padding: d.Padding,
		Lists:   entries,
	}
}

// FromSnapshot 从纯值表示重建文档，并恢复规范化不变式。
func FromSnapshot(s Snapshot) Document {
	d := New()
	if len(s.Spans) > 0 {
		d.Spans = normalizeSpans(s.Spans)
	}
	if s.Align != "" {
		d.Align = s.Align
	}
	if s.VAlign != "" {
		d.VAlign = s.VAlign
	}
	d.Padding = s.Padding
	if len(s.Lists) > 0 {
		d.Lists = make(map[int]ListItem, len(s.Lists))
		for _, e := range s.Lists {
			if e.Line >= 0 {
				d.Lists[e.Line] = e.Item
			}
		}
	}
	return d
}

// MarshalJSON 以快照形式输出文档。
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Snapshot())
}

// UnmarshalJSON 从快照形式恢复文档。
func (d *Document) UnmarshalJSON(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("解析文档快照失败: %w", err)
	}
	*d = FromSnapshot(s)
	return nil
}
