package markup

import (
	"fmt"
	"strconv"
	"strings"
)

// Interpolate 将文本中的 ${path.to.value} 替换为 data 中的值。
// data 为 nil 时原样返回；路径不存在或表达式残缺则报错，
// 避免占位符悄悄留在排版结果里。
func Interpolate(text string, data any) (string, error) {
	if data == nil || !strings.Contains(text, "${") {
		return text, nil
	}
	var sb strings.Builder
	for {
		i := strings.Index(text, "${")
		if i < 0 {
			sb.WriteString(text)
			break
		}
		sb.WriteString(text[:i])
		rest := text[i+2:]
		j := strings.IndexByte(rest, '}')
		if j < 0 {
			return "", fmt.Errorf("插值表达式缺少右花括号: %q", text[i:])
		}
		path := strings.TrimSpace(rest[:j])
		if path == "" {
			return "", fmt.Errorf("插值表达式为空")
		}
		val, err := Lookup(data, path)
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprint(val))
		text = rest[j+1:]
	}
	return sb.String(), nil
}

// Lookup 按点分路径访问 data：每段为键名，后面可跟任意个 [下标]。
// data 期望是 JSON 反序列化出的 map[string]any / []any 嵌套结构。
func Lookup(data any, path string) (any, error) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name := segment
		var indexes []string
		if k := strings.IndexByte(segment, '['); k >= 0 {
			name = segment[:k]
			for rest := segment[k:]; strings.HasPrefix(rest, "["); {
				end := strings.IndexByte(rest, ']')
				if end < 0 {
					return nil, fmt.Errorf("路径 %q 的下标缺少右方括号", path)
				}
				indexes = append(indexes, rest[1:end])
				rest = rest[end+1:]
			}
		}

		if name != "" {
			m, ok := current.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("路径 %q 中 %q 的上级不是对象", path, name)
			}
			current, ok = m[name]
			if !ok {
				return nil, fmt.Errorf("路径 %q 中不存在键 %q", path, name)
			}
		}
		for _, idxStr := range indexes {
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				return nil, fmt.Errorf("路径 %q 的下标 %q 不是整数", path, idxStr)
			}
			arr, ok := current.([]any)
			if !ok {
				return nil, fmt.Errorf("路径 %q 中下标作用于非数组", path)
			}
			if idx < 0 || idx >= len(arr) {
				return nil, fmt.Errorf("路径 %q 的下标 %d 越界（长度 %d）", path, idx, len(arr))
			}
			current = arr[idx]
		}
	}
	return current, nil
}
