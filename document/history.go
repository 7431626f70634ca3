package document

// History 以整文档快照实现撤销/重做。文档是不可变值，
// 快照之间互不影响；栈深度超过上限时丢弃最旧的快照。
type History struct {
	limit  int
	past   []Document
	future []Document
}

// NewHistory 创建快照栈，limit <= 0 时使用默认深度 100。
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 100
	}
	return &History{limit: limit}
}

// Push 在执行一次编辑前记录当前文档，并清空重做栈。
func (h *History) Push(d Document) {
	h.past = append(h.past, d.Clone())
	if len(h.past) > h.limit {
		h.past = h.past[len(h.past)-h.limit:]
	}
	h.future = h.future[:0]
}

// Undo 回退到上一个快照；current 为当前文档，用于填充重做栈。
func (h *History) Undo(current Document) (Document, bool) {
	if len(h.past) == 0 {
		return current, false
	}
	last := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, current.Clone())
	return last, true
}

// Redo 前进到最近一次被撤销的快照。
func (h *History) Redo(current Document) (Document, bool) {
	if len(h.future) == 0 {
		return current, false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, current.Clone())
	return next, true
}

// CanUndo 报告是否存在可回退的快照。
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo 报告是否存在可重做的快照。
func (h *History) CanRedo() bool { return len(h.future) > 0 }
