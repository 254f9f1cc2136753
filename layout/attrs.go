package layout

import (
	"fmt"
	"sort"
	"strconv"
)

// Attrs 是一个元素的属性集合。几何属性经 Resolver 处理后保存为数值（pt），
// 其余属性保持原始字符串，由使用方按需转换。
type Attrs struct {
	raw map[string]string
	num map[string]float64

	// Pinned 为 true 表示元素不参与自动光标定位（显式 y 或 cursor 关键字）。
	Pinned bool
	// Auto 由 Cursor.Place 设置：元素位置由光标推导，绘制后需要回写光标。
	Auto bool
}

// NewAttrs 复制原始属性，避免修改调用方的 map。
func NewAttrs(raw map[string]string) *Attrs {
	a := &Attrs{
		raw: make(map[string]string, len(raw)),
		num: map[string]float64{},
	}
	for k, v := range raw {
		a.raw[k] = v
	}
	return a
}

// Has 判断属性是否存在（无论数值还是字符串）。
func (a *Attrs) Has(key string) bool {
	if _, ok := a.num[key]; ok {
		return true
	}
	_, ok := a.raw[key]
	return ok
}

// Num 返回已解析的数值属性。
func (a *Attrs) Num(key string) (float64, bool) {
	v, ok := a.num[key]
	return v, ok
}

// Set 写入数值属性，同时覆盖同名字符串。
func (a *Attrs) Set(key string, v float64) {
	delete(a.raw, key)
	a.num[key] = v
}

// String 返回字符串属性。
func (a *Attrs) String(key string) (string, bool) {
	v, ok := a.raw[key]
	return v, ok
}

// Get 返回字符串属性，不存在时返回 def。
func (a *Attrs) Get(key, def string) string {
	if v, ok := a.raw[key]; ok {
		return v
	}
	return def
}

// Float 优先返回数值属性，否则尝试把字符串转为数字；两者都不存在时返回 def。
func (a *Attrs) Float(key string, def float64) (float64, error) {
	if v, ok := a.num[key]; ok {
		return v, nil
	}
	s, ok := a.raw[key]
	if !ok {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: 属性 %s=%q 不是数字", ErrResolve, key, s)
	}
	return v, nil
}

// Bool 把 "1"/"true"/"yes" 视为 true；数值属性非零即为 true。
func (a *Attrs) Bool(key string) bool {
	if v, ok := a.num[key]; ok {
		return v != 0
	}
	switch a.raw[key] {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// Pop 取出并删除一个属性，数值属性会被格式化为字符串。
func (a *Attrs) Pop(key string) (string, bool) {
	if v, ok := a.raw[key]; ok {
		delete(a.raw, key)
		return v, true
	}
	if v, ok := a.num[key]; ok {
		delete(a.num, key)
		return strconv.FormatFloat(v, 'f', -1, 64), true
	}
	return "", false
}

// Delete 删除属性。
func (a *Attrs) Delete(key string) {
	delete(a.raw, key)
	delete(a.num, key)
}

// Keys 返回排好序的全部属性名。
func (a *Attrs) Keys() []string {
	keys := make([]string, 0, len(a.raw)+len(a.num))
	for k := range a.raw {
		keys = append(keys, k)
	}
	for k := range a.num {
		if _, dup := a.raw[k]; !dup {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
