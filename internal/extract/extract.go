// 包 extract 负责把当前目录下的导出 zip 解包进输入目录。
// 与站点产物一样按存在性判定幂等：目录已有内容则整体跳过。
package extract

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go-photo-archive/internal/logx"
)

// Run 解压工作目录下全部 *.zip 到 dir；dir 非空则跳过解压。
func Run(dir string) error {
	if entries, err := os.ReadDir(dir); err == nil && len(entries) > 0 {
		logx.Infof("%s 已存在且非空，跳过解压", dir)
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	zips, err := filepath.Glob("*.zip")
	if err != nil {
		return fmt.Errorf("glob zips: %w", err)
	}
	sort.Strings(zips)
	for _, zf := range zips {
		logx.Infof("解压 %s ...", zf)
		if err := unzip(zf, dir); err != nil {
			return fmt.Errorf("extract %s: %w", zf, err)
		}
	}
	return nil
}

// unzip 把单个压缩包展开到 dst，拒绝越出目标目录的成员路径。
func unzip(path, dst string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}
	defer r.Close()
	for _, f := range r.File {
		target := filepath.Join(dst, filepath.Clean(f.Name))
		if !strings.HasPrefix(target, filepath.Clean(dst)+string(os.PathSeparator)) {
			return fmt.Errorf("illegal member path: %s", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("mkdir %s: %w", target, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", filepath.Dir(target), err)
		}
		if err := writeMember(f, target); err != nil {
			return err
		}
	}
	return nil
}

func writeMember(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open member %s: %w", f.Name, err)
	}
	defer rc.Close()
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}
