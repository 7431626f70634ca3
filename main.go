package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ByLCY/inkwell/layout"
	"github.com/ByLCY/inkwell/markup"
	"github.com/ByLCY/inkwell/measure"
)

func main() {
	input := flag.String("in", "examples/demo.inkwell", "标记文件路径")
	output := flag.String("out", "output/layout.json", "布局 JSON 输出路径")
	width := flag.Float64("width", 320, "容器宽度")
	height := flag.Float64("height", 240, "容器高度")
	backend := flag.String("measure", "mono", "测量后端：mono 或 canvas")
	fontDir := flag.String("fonts", "", "canvas 后端的字体目录（缺省取标记文件所在目录）")
	dataJSON := flag.String("data", "", "绑定到标记文本的 JSON 数据")
	flag.Parse()

	var inputData any
	if *dataJSON != "" {
		if err := json.Unmarshal([]byte(*dataJSON), &inputData); err != nil {
			log.Fatalf("解析 data JSON 失败: %v", err)
		}
	}

	m, err := newMeasurer(*backend, *fontDir, *input)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := run(*input, *output, *width, *height, inputData, m); err != nil {
		log.Fatalf("布局失败: %v", err)
	}
	fmt.Printf("已生成布局：%s\n", *output)
}

// newMeasurer 按名称构建测量后端，统一套上记忆缓存。
func newMeasurer(backend, fontDir, inputPath string) (layout.Measurer, error) {
	switch backend {
	case "mono":
		return measure.NewCache(measure.NewMono()), nil
	case "canvas":
		if fontDir == "" {
			fontDir = filepath.Dir(inputPath)
		}
		return measure.NewCache(measure.NewCanvas(measure.CanvasOptions{BaseDir: fontDir})), nil
	default:
		return nil, fmt.Errorf("未知的测量后端 %q", backend)
	}
}

// run 串联解析、构建与布局。
func run(inputPath, outputPath string, width, height float64, data any, m layout.Measurer) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开标记文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	ast, err := markup.ParseFile(file)
	if err != nil {
		return fmt.Errorf("解析标记文本失败: %w", err)
	}
	doc, err := markup.Build(ast, data)
	if err != nil {
		return fmt.Errorf("构建文档失败: %w", err)
	}

	result := layout.Layout(doc, width, height, m)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(result, outputPath); err != nil {
		return fmt.Errorf("输出布局 JSON 失败: %w", err)
	}
	return nil
}
