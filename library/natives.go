package library

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/mrnavastar/mclaunch/util/logger"
)

var sharedLibraryExts = map[string]bool{".dll": true, ".so": true, ".dylib": true}

// ResetNatives empties dir, leaving it present.
func ResetNatives(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("cleaning natives directory: %w", err)
	}
	return os.MkdirAll(dir, 0755)
}

// ExtractNative copies the shared libraries of a natives jar into outputDir,
// keeping their relative directories. Jar metadata, directories, anything
// that is not a .dll, .so or .dylib and any entry whose name contains one of
// excludes are skipped. It returns the number of files written.
func ExtractNative(jarPath string, outputDir string, excludes []string) (int, error) {
	reader, err := zip.OpenReader(jarPath)
	if err != nil {
		return 0, fmt.Errorf("opening native jar %s: %w", jarPath, err)
	}
	defer reader.Close()

	extracted := 0
	for _, file := range reader.File {
		name, ok := entryName(file)
		if !ok || excluded(name, excludes) {
			continue
		}
		if !sharedLibraryExts[path.Ext(name)] {
			continue
		}

		if err := extractFile(file, filepath.Join(outputDir, filepath.FromSlash(name))); err != nil {
			return extracted, fmt.Errorf("extracting %s from %s: %w", name, jarPath, err)
		}
		extracted++
	}
	return extracted, nil
}

// entryName returns the cleaned entry name, or false for directories,
// jar metadata and names escaping the output root.
func entryName(file *zip.File) (string, bool) {
	if file.FileInfo().IsDir() || strings.HasSuffix(file.Name, "/") {
		return "", false
	}
	name := path.Clean(strings.ReplaceAll(file.Name, `\`, "/"))
	if path.IsAbs(name) || name == ".." || strings.HasPrefix(name, "../") {
		logger.Logger().Warnf("skipping native entry outside the output root: %s", file.Name)
		return "", false
	}
	if name == "META-INF" || strings.HasPrefix(name, "META-INF/") {
		return "", false
	}
	return name, true
}

func excluded(name string, excludes []string) bool {
	for _, pattern := range excludes {
		if pattern != "" && strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

func extractFile(file *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	in, err := file.Open()
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
