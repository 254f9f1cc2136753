package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ByLCY/pdfml/engine"
	"github.com/ByLCY/pdfml/layout"
	"github.com/ByLCY/pdfml/markup"
	"github.com/ByLCY/pdfml/renderer"
	canvasrenderer "github.com/ByLCY/pdfml/renderer/canvas"
)

type config struct {
	input    string
	output   string
	format   markup.Format
	template bool
	data     any
	imageDir string
	debug    string
	logger   *slog.Logger
}

func main() {
	input := flag.String("in", "examples/demo.xml", "markup 或模板文件路径")
	output := flag.String("out", "output/demo.pdf", "PDF 输出路径")
	format := flag.String("format", "xml", "markup 格式：xml 或 dsl")
	templated := flag.Bool("template", false, "先把输入作为模板渲染")
	dataJSON := flag.String("data", "", "模板数据（JSON），需要同时指定 -template")
	imageDir := flag.String("images", "", "image 元素 src 的基准目录，默认为输入文件所在目录")
	fontDir := flag.String("fonts", "", "额外字体目录，按 <font>.ttf 查找")
	debug := flag.String("debug", "", "绘图调用调试 JSON 输出路径")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	f, err := markup.ParseFormat(*format)
	if err != nil {
		log.Fatalf("%v", err)
	}
	cfg := config{
		input:    *input,
		output:   *output,
		format:   f,
		template: *templated,
		imageDir: *imageDir,
		debug:    *debug,
	}
	if cfg.imageDir == "" {
		cfg.imageDir = filepath.Dir(*input)
	}
	if *dataJSON != "" {
		if !cfg.template {
			log.Fatalf("-data 只能与 -template 一起使用")
		}
		if err := json.Unmarshal([]byte(*dataJSON), &cfg.data); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	cfg.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var r renderer.Renderer = canvasrenderer.NewRenderer(*fontDir)
	if err := run(cfg, r); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", cfg.output)
}

// run 串联模板、布局与渲染。
func run(cfg config, r renderer.Renderer) error {
	if r == nil {
		return fmt.Errorf("renderer 不能为空")
	}
	file, err := os.Open(cfg.input)
	if err != nil {
		return fmt.Errorf("无法打开输入文件 %s: %w", cfg.input, err)
	}
	defer file.Close()

	var surface layout.Surface = r
	var rec *layout.Recorder
	if cfg.debug != "" {
		rec = layout.NewRecorder(r)
		surface = rec
	}
	opts := engine.Options{Surface: surface, ImageDir: cfg.imageDir, Logger: cfg.logger}

	if cfg.template {
		src, err := io.ReadAll(file)
		if err != nil {
			return fmt.Errorf("读取模板失败: %w", err)
		}
		_, err = engine.RenderTemplate(string(src), cfg.data, cfg.format, opts)
		if err != nil {
			return fmt.Errorf("布局计算失败: %w", err)
		}
	} else if _, err := engine.LoadMarkup(file, cfg.format, opts); err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if rec != nil {
		if err := writeDebug(rec, cfg.debug); err != nil {
			return err
		}
	}

	pdfBytes, err := r.Render()
	if err != nil {
		return fmt.Errorf("渲染 PDF 失败: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.output), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(cfg.output, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("写入 PDF 文件失败: %w", err)
	}
	return nil
}

func writeDebug(rec *layout.Recorder, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(rec, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}
