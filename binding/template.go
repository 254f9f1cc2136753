package binding

import (
	"bytes"
	"fmt"
	"text/template"
)

// Render 先以 text/template 执行模板，再对输出做一次 ${path} 插值。
// funcs 中的函数在解析前注册，可覆盖同名默认函数。
func Render(name, src string, data any, funcs template.FuncMap) (string, error) {
	tmpl := template.New(name).Option("missingkey=zero")
	if len(funcs) > 0 {
		tmpl = tmpl.Funcs(funcs)
	}
	tmpl, err := tmpl.Parse(src)
	if err != nil {
		return "", fmt.Errorf("解析模板 %s 失败: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("执行模板 %s 失败: %w", name, err)
	}
	return Interpolate(buf.String(), data), nil
}
