package deck

import (
	"archive/zip"
	"io"
	"os"
	"regexp"
)

var slidePartPattern = regexp.MustCompile(`^ppt/slides(/_rels)?/slide\d+\.xml(\.rels)?$`)

// loadTemplateParts 读取模板.pptx内除幻灯片以外的全部文件，
// 母版、版式、主题等保留，模板自带的幻灯片全部剔除，
// 清单文件随后按新幻灯片重写
func loadTemplateParts(path string) (map[string][]byte, error) {
	templateFile, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer templateFile.Close()

	info, err := templateFile.Stat()
	if err != nil {
		return nil, err
	}

	templateZip, err := zip.NewReader(templateFile, info.Size())
	if err != nil {
		return nil, err
	}

	files := make(map[string][]byte)
	for _, file := range templateZip.File {
		if slidePartPattern.MatchString(file.Name) {
			continue
		}
		data, err := readZipFile(file)
		if err != nil {
			return nil, err
		}
		files[file.Name] = data
	}

	return files, nil
}

// 从ZIP文件中读取内容
func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
