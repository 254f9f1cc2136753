// Package fonts 提供内置字体注册表：PDF 标准字体名映射到 Go 字体族的 TTF 数据。
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// 标准字体名（不区分大小写）到字体数据。Times 系列没有衬线替代，沿用 Go 比例字体。
var builtin = map[string][]byte{
	"helvetica":             goregular.TTF,
	"helvetica-bold":        gobold.TTF,
	"helvetica-oblique":     goitalic.TTF,
	"helvetica-boldoblique": gobolditalic.TTF,
	"times-roman":           goregular.TTF,
	"times-bold":            gobold.TTF,
	"times-italic":          goitalic.TTF,
	"times-bolditalic":      gobolditalic.TTF,
	"courier":               gomono.TTF,
	"courier-bold":          gomonobold.TTF,
	"courier-oblique":       gomonoitalic.TTF,
	"courier-boldoblique":   gomonobolditalic.TTF,
}

// Builtin 报告 name 是否为内置字体。
func Builtin(name string) bool {
	_, ok := builtin[strings.ToLower(name)]
	return ok
}

// Load 返回字体数据。优先匹配内置字体，其次在 dirs 中查找 name.ttf / name.otf。
func Load(name string, dirs ...string) ([]byte, error) {
	if data, ok := builtin[strings.ToLower(name)]; ok {
		return data, nil
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, ext := range []string{".ttf", ".otf", ""} {
			data, err := os.ReadFile(filepath.Join(dir, name+ext))
			if err == nil {
				return data, nil
			}
		}
	}
	return nil, fmt.Errorf("未找到字体 %s", name)
}

// Names 返回按字母排序的内置字体名（保留标准大小写）。
func Names() []string {
	names := make([]string, 0, len(builtin))
	for key := range builtin {
		names = append(names, canonical(key))
	}
	sort.Strings(names)
	return names
}

func canonical(key string) string {
	parts := strings.Split(key, "-")
	for i, p := range parts {
		switch p {
		case "bold":
			parts[i] = "Bold"
		case "oblique":
			parts[i] = "Oblique"
		case "boldoblique":
			parts[i] = "BoldOblique"
		case "italic":
			parts[i] = "Italic"
		case "bolditalic":
			parts[i] = "BoldItalic"
		default:
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "-")
}
