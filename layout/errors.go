package layout

import "errors"

// ErrResolve 表示属性值无法解析：未知单位、纸张、颜色、关键字或非法数值。
var ErrResolve = errors.New("属性解析失败")
