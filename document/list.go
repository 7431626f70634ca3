package document

import (
	"sort"
	"strings"
)

// ListKind 区分无序与有序列表。
type ListKind string

const (
	ListBullet ListKind = "bullet"
	ListNumber ListKind = "number"
)

// MaxListLevel 是列表嵌套层级上限（0 为最外层）。
const MaxListLevel = 8

// ListItem 标记某一源行属于列表：类型、嵌套层级，
// 以及有序列表的 1 起始序号（由 Renumber 维护）。
type ListItem struct {
	Kind  ListKind `json:"kind"`
	Level int      `json:"level"`
	Index int      `json:"index,omitempty"`
}

// Marker 返回该列表项的渲染标记文本。无序项按层级循环 •/◦/▪；
// 有序项按 level % 3 循环阿拉伯数字、小写字母与小写罗马数字。
func (it ListItem) Marker() string {
	if it.Kind == ListBullet {
		bullets := []string{"•", "◦", "▪"}
		return bullets[it.Level%3]
	}
	n := it.Index
	if n < 1 {
		n = 1
	}
	switch it.Level % 3 {
	case 1:
		return alphaIndex(n) + "."
	case 2:
		return romanIndex(n) + "."
	default:
		return itoa(n) + "."
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

// alphaIndex 将 1 起始序号映射为 a, b, ..., z, aa, ab, ...
func alphaIndex(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('a' + n%26)}, b...)
		n /= 26
	}
	return string(b)
}

// romanIndex 将 1 起始序号映射为小写罗马数字。
func romanIndex(n int) string {
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := []string{"m", "cm", "d", "cd", "c", "xc", "l", "xl", "x", "ix", "v", "iv", "i"}
	var b strings.Builder
	for i, v := range values {
		for n >= v {
			b.WriteString(symbols[i])
			n -= v
		}
	}
	return b.String()
}

// cloneLists 返回列表映射的写时复制副本。
func (d Document) cloneLists() map[int]ListItem {
	out := make(map[int]ListItem, len(d.Lists))
	for k, v := range d.Lists {
		out[k] = v
	}
	return out
}

func (d Document) withLists(lists map[int]ListItem) Document {
	out := d
	out.Lists = lists
	return out
}

// ListItemAtLine 返回某源行的列表项（若存在）。
func (d Document) ListItemAtLine(line int) (ListItem, bool) {
	it, ok := d.Lists[line]
	return it, ok
}

// ToggleListForLines 切换 [startLine, endLine] 范围内各行的列表状态：
// 当所有行均已是同类型列表项时整体移除，否则整体设置为该类型
// （已有项保留层级，仅改类型）。完成后重新编号。
func (d Document) ToggleListForLines(startLine, endLine int, kind ListKind) Document {
	maxLine := d.LineCount() - 1
	if startLine < 0 {
		startLine = 0
	}
	if endLine > maxLine {
		endLine = maxLine
	}
	if startLine > endLine {
		return d
	}

	all := true
	for line := startLine; line <= endLine; line++ {
		if it, ok := d.Lists[line]; !ok || it.Kind != kind {
			all = false
			break
		}
	}

	lists := d.cloneLists()
	for line := startLine; line <= endLine; line++ {
		if all {
			delete(lists, line)
			continue
		}
		level := 0
		if it, ok := lists[line]; ok {
			level = it.Level
		}
		lists[line] = ListItem{Kind: kind, Level: level}
	}
	return d.withLists(lists).Renumber()
}

// IndentListItem 将某行列表项层级加一（封顶 MaxListLevel）并重新编号。
// 该行不是列表项时为空操作。
func (d Document) IndentListItem(line int) Document {
	it, ok := d.Lists[line]
	if !ok {
		return d
	}
	if it.Level >= MaxListLevel {
		return d
	}
	lists := d.cloneLists()
	it.Level++
	lists[line] = it
	return d.withLists(lists).Renumber()
}

// OutdentListItem 将某行列表项层级减一；已在最外层（0）时直接移除该项。
func (d Document) OutdentListItem(line int) Document {
	it, ok := d.Lists[line]
	if !ok {
		return d
	}
	lists := d.cloneLists()
	if it.Level == 0 {
		delete(lists, line)
	} else {
		it.Level--
		lists[line] = it
	}
	return d.withLists(lists).Renumber()
}

// RemoveListItemAtLine 删除某行的列表项，并将其后所有行的条目整体前移一行。
// 供控件层在删除一整行后同步映射使用；编号由调用方随后触发。
func (d Document) RemoveListItemAtLine(line int) Document {
	lists := make(map[int]ListItem, len(d.Lists))
	for k, v := range d.Lists {
		switch {
		case k < line:
			lists[k] = v
		case k > line:
			lists[k-1] = v
		}
	}
	return d.withLists(lists)
}

// Renumber 按行号升序重新计算所有有序列表项的序号。
// 每个嵌套层级维护一个独立计数器；遇到非列表行（断档）清空全部计数器，
// 回到较浅层级时清空更深层级的计数器。无序项保持计数器存续但不推进。
func (d Document) Renumber() Document {
	if len(d.Lists) == 0 {
		return d
	}

	lines := make([]int, 0, len(d.Lists))
	for line := range d.Lists {
		lines = append(lines, line)
	}
	sort.Ints(lines)

	lists := d.cloneLists()
	counters := make([]int, MaxListLevel+1)
	prev := -1
	for _, line := range lines {
		if prev >= 0 && line != prev+1 {
			// 中间隔着非列表行，列表从头计数。
			for i := range counters {
				counters[i] = 0
			}
		}
		it := lists[line]
		level := it.Level
		if level < 0 {
			level = 0
		}
		if level > MaxListLevel {
			level = MaxListLevel
		}
		for i := level + 1; i < len(counters); i++ {
			counters[i] = 0
		}
		if it.Kind == ListNumber {
			counters[level]++
			it.Index = counters[level]
			lists[line] = it
		}
		prev = line
	}
	return d.withLists(lists)
}
