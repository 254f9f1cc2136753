package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将记录下来的绘图调用输出为 JSON，便于调试或可视化。
func WriteDebugJSON(rec *Recorder, path string) error {
	if rec == nil {
		return nil
	}
	data, err := json.MarshalIndent(struct {
		Pages int  `json:"pages"`
		Ops   []Op `json:"ops"`
	}{rec.Pages, rec.Ops}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
