// 包 files 负责扫描松散媒体文件并建立 ID → 路径 的索引。
// 导出的媒体文件名形如 {slug}_{id}_o.{ext}（原质量变体）或 {slug}_{id}.{ext}。
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// 文件名尾部的 _{数字ID}[_o].{扩展名} 模式；不匹配的文件（如元数据）直接忽略。
var mediaName = regexp.MustCompile(`_(\d+)(?:_o)?\.(\w+)$`)

// Build 扫描目录并返回 ID → 文件路径 的映射。
// 同一 ID 命中多个文件时后者覆盖前者——这是导出数据本身的歧义，按原样接受，不报错。
// 零命中不是错误：缺失在下游按“该记录无媒体文件”处理。
func Build(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read media dir %s: %w", dir, err)
	}
	index := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.EqualFold(filepath.Ext(name), ".json") {
			continue
		}
		m := mediaName.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		index[m[1]] = filepath.Join(dir, name)
	}
	return index, nil
}
