package deck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/zhoukk/slidegen/pkg/logger"
)

// AspectRatio 表示演示文稿宽高比
type AspectRatio string

const (
	AspectWidescreen AspectRatio = "16:9" // 宽屏
	AspectStandard   AspectRatio = "4:3"  // 标准
)

// Generator 负责把内容树装配为完整的.pptx文档
type Generator struct {
	templates map[AspectRatio]string // 模板路径映射
}

// NewGenerator 创建一个新的文档生成器
func NewGenerator() *Generator {
	return &Generator{
		templates: map[AspectRatio]string{
			AspectWidescreen: "./assets/templates/template_16_9.pptx",
			AspectStandard:   "./assets/templates/template_4_3.pptx",
		},
	}
}

// RegisterTemplate 注册自定义模板
func (g *Generator) RegisterTemplate(ratio AspectRatio, path string) {
	g.templates[ratio] = path
}

// Generate 将内容树渲染为.pptx文件字节。
// 幻灯片按内容树顺序输出；布局未知的记录跳过不报错；
// 模板缺失时降级为内置空白底稿，生成仍然成功
func (g *Generator) Generate(tree *ContentTree, ratio AspectRatio) ([]byte, error) {
	templatePath := g.templates[ratio]

	files, err := loadTemplateParts(templatePath)
	if err != nil {
		logger.Warn("模板不可用，降级为内置空白底稿",
			logger.F("templatePath", templatePath),
			logger.F("error", err),
		)
		files = blankParts()
	}

	// 先渲染全部幻灯片，跳过的记录不占用编号
	var slideXMLs []string
	for i, record := range tree.Slides {
		slideXML, ok := generateSlideXML(record)
		if !ok {
			logger.Warn("未知布局，跳过该幻灯片",
				logger.F("index", i),
				logger.F("layout", record.Layout),
			)
			continue
		}
		slideXMLs = append(slideXMLs, slideXML)
	}

	for i, slideXML := range slideXMLs {
		slideNum := i + 1
		files[fmt.Sprintf("ppt/slides/slide%d.xml", slideNum)] = []byte(slideXML)
		files[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideNum)] = []byte(slideRelsXML)
	}

	// 重写清单文件
	files["[Content_Types].xml"] = buildContentTypes(files, len(slideXMLs))
	files["ppt/presentation.xml"] = buildPresentation(len(slideXMLs), ratio)
	files["ppt/_rels/presentation.xml.rels"] = buildPresentationRels(len(slideXMLs))
	if _, ok := files["_rels/.rels"]; !ok {
		files["_rels/.rels"] = []byte(rootRelsXML)
	}

	return writeZip(files)
}

// 将所有文件按固定顺序写入ZIP
func writeZip(files map[string][]byte) ([]byte, error) {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	buf := new(bytes.Buffer)
	zipWriter := zip.NewWriter(buf)

	for _, name := range names {
		fw, err := zipWriter.Create(name)
		if err != nil {
			logger.Error("创建文档部件失败", logger.F("filename", name), logger.F("error", err))
			return nil, err
		}
		if _, err = fw.Write(files[name]); err != nil {
			logger.Error("写入文档部件失败", logger.F("filename", name), logger.F("error", err))
			return nil, err
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteFile 将生成的文档写入目标路径。
// 先写临时文件再重命名，目标路径上不会出现半成品
func (g *Generator) WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error("创建输出目录失败", logger.F("dir", dir), logger.F("error", err))
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		logger.Error("创建临时文件失败", logger.F("path", path), logger.F("error", err))
		return err
	}

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		logger.Error("写入演示文稿失败", logger.F("path", path), logger.F("error", err))
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		logger.Error("移动演示文稿失败", logger.F("path", path), logger.F("error", err))
		return err
	}

	return nil
}
