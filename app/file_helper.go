package app

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// FileHelper provides file collection utilities for Java sources
type FileHelper struct {
	// respectGitignore skips files matched by a .gitignore found at the
	// root of a collected directory
	respectGitignore bool
}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{respectGitignore: true}
}

// NewFileHelperWithOptions creates a FileHelper with explicit settings
func NewFileHelperWithOptions(respectGitignore bool) *FileHelper {
	return &FileHelper{respectGitignore: respectGitignore}
}

// CollectJavaFiles collects Java files from the given paths
func (h *FileHelper) CollectJavaFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if h.isJavaFile(path) && !h.isExcluded(path, excludePatterns) {
				files = append(files, path)
			}
			continue
		}

		ignore := h.loadGitignore(path)

		if recursive {
			err = filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}

				// Skip excluded directories early
				if info.IsDir() {
					dirName := filepath.Base(filePath)
					for _, pattern := range excludePatterns {
						if pattern == dirName {
							return filepath.SkipDir
						}
						if matched, _ := filepath.Match(pattern, dirName); matched {
							return filepath.SkipDir
						}
					}
					return nil
				}

				if !h.isJavaFile(filePath) || h.isExcluded(filePath, excludePatterns) {
					return nil
				}
				if ignore != nil {
					if rel, relErr := filepath.Rel(path, filePath); relErr == nil && ignore.MatchesPath(rel) {
						return nil
					}
				}

				files = append(files, filePath)
				return nil
			})
		} else {
			entries, readErr := os.ReadDir(path)
			if readErr != nil {
				return nil, readErr
			}

			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				filePath := filepath.Join(path, entry.Name())
				if !h.isJavaFile(filePath) || h.isExcluded(filePath, excludePatterns) {
					continue
				}
				if ignore != nil && ignore.MatchesPath(entry.Name()) {
					continue
				}
				files = append(files, filePath)
			}
		}

		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// IsValidJavaFile checks if a file is a Java source file
func (h *FileHelper) IsValidJavaFile(path string) bool {
	return h.isJavaFile(path)
}

// FileExists checks if a file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadFile reads file content
func (h *FileHelper) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// loadGitignore compiles the .gitignore at the directory root, if any
func (h *FileHelper) loadGitignore(dir string) *gitignore.GitIgnore {
	if !h.respectGitignore {
		return nil
	}
	ignore, err := gitignore.CompileIgnoreFile(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	return ignore
}

// isJavaFile checks if a file is a Java source based on extension
func (h *FileHelper) isJavaFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".java"
}

// isExcluded checks if a path matches any exclude pattern
func (h *FileHelper) isExcluded(path string, excludePatterns []string) bool {
	for _, pattern := range excludePatterns {
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
		// Also check full path matching, with glob stars stripped so
		// patterns like **/target/** match any path segment
		if trimmed := strings.Trim(pattern, "*"); trimmed != "" && strings.Contains(path, trimmed) {
			return true
		}
	}
	return false
}

// ResolveFilePaths resolves file paths, returning existing files directly
// or collecting files from directories
func ResolveFilePaths(
	fileHelper *FileHelper,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
) ([]string, error) {
	allFiles := true
	for _, path := range paths {
		exists, err := fileHelper.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	if allFiles {
		return paths, nil
	}

	return fileHelper.CollectJavaFiles(paths, recursive, includePatterns, excludePatterns)
}
