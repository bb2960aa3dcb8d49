package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"wavify/internal/app/model"
)

// ErrEmptyFile is returned by CheckNonEmpty for zero-length files.
var ErrEmptyFile = errors.New("file is empty")

// EnsureDir creates dir and its parents if they do not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// CollectFiles expands paths into the regular files whose extension is in
// exts. Directories are scanned one level deep and their files ordered
// oldest first; explicitly named files are kept as given.
func CollectFiles(paths []string, exts []string) ([]model.FileInfo, error) {
	var fileInfos []model.FileInfo
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			fileInfos = append(fileInfos, newFileInfo(p, info))
			continue
		}

		dirFiles, err := GetAllFiles(p, exts)
		if err != nil {
			return nil, err
		}
		fileInfos = append(fileInfos, dirFiles...)
	}
	return lo.UniqBy(fileInfos, func(f model.FileInfo) string { return f.FullPath }), nil
}

// GetAllFiles lists files in inputDir with one of exts, oldest first.
func GetAllFiles(inputDir string, exts []string) ([]model.FileInfo, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var fileInfos []model.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !lo.Contains(exts, strings.ToLower(filepath.Ext(entry.Name()))) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		fileInfos = append(fileInfos, newFileInfo(filepath.Join(inputDir, entry.Name()), info))
	}

	sort.Slice(fileInfos, func(i, j int) bool {
		return fileInfos[i].ModTime.Before(fileInfos[j].ModTime)
	})
	return fileInfos, nil
}

// ReadOutputFile reads the specified output file and returns its text content.
func ReadOutputFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(content)), nil
}

// CheckExists verifies that path is a regular file. It may be empty.
func CheckExists(path string) error {
	_, err := statRegular(path)
	return err
}

// CheckNonEmpty verifies that path is a regular file with content.
func CheckNonEmpty(path string) error {
	info, err := statRegular(path)
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	return nil
}

func statRegular(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	return info, nil
}

func newFileInfo(path string, info os.FileInfo) model.FileInfo {
	return model.FileInfo{
		FullPath: path,
		ModTime:  info.ModTime(),
		Name:     info.Name(),
		Size:     info.Size(),
	}
}
