package fileutils

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/buger/jsonparser"
	"github.com/klauspost/compress/zip"
)

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ErrEntryNotFound is returned when a jar lacks the requested entry.
var ErrEntryNotFound = errors.New("jar entry not found")

// HasJarEntry reports whether the jar at path contains an entry named name.
func HasJarEntry(path string, name string) (bool, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return false, err
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// ReadJarEntry returns the content of the first of names present in the jar.
func ReadJarEntry(path string, names ...string) (string, []byte, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", nil, err
	}
	defer reader.Close()

	files := make(map[string]*zip.File, len(reader.File))
	for _, file := range reader.File {
		files[file.Name] = file
	}

	for _, name := range names {
		file, ok := files[name]
		if !ok {
			continue
		}
		f, err1 := file.Open()
		if err1 != nil {
			return "", nil, err1
		}
		content, err2 := io.ReadAll(f)
		f.Close()
		if err2 != nil {
			return "", nil, err2
		}
		return name, content, nil
	}
	return "", nil, fmt.Errorf("%w: none of %v in %s", ErrEntryNotFound, names, path)
}

// CopyDir copies the tree under src into dst, overwriting files that exist.
func CopyDir(src string, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err1 := filepath.Rel(src, path)
		if err1 != nil {
			return err1
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err1 := os.Create(dst)
	if err1 != nil {
		return err1
	}
	if _, err2 := io.Copy(out, in); err2 != nil {
		out.Close()
		return err2
	}
	return out.Close()
}

// ProfileStubs are the launcher profile files loader installers refuse to
// run without.
var ProfileStubs = []string{"launcher_profiles.json", "launcher_profiles_microsoft_store.json"}

// WriteProfileStubs writes an empty launcher profile list into each stub file in dir.
func WriteProfileStubs(dir string) error {
	stub, err := jsonparser.Set([]byte("{}"), []byte("{}"), "profiles")
	if err != nil {
		return err
	}
	for _, name := range ProfileStubs {
		if err1 := os.WriteFile(filepath.Join(dir, name), stub, 0644); err1 != nil {
			return err1
		}
	}
	return nil
}
