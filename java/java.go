// Package java locates a java runtime to launch the game and run loader installers with.
package java

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/util/logger"
)

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "java.exe"
	}
	return "java"
}

// searchDirs are directories whose children are JDK homes.
var searchDirs = func() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Program Files\Java`,
			`C:\Program Files (x86)\Java`,
			`C:\Program Files\Eclipse Adoptium`,
			`C:\Program Files\Microsoft\jdk`,
		}
	case "darwin":
		return []string{
			"/Library/Java/JavaVirtualMachines",
			"/System/Library/Java/JavaVirtualMachines",
		}
	default:
		return []string{"/usr/lib/jvm", "/usr/java"}
	}
}

// Find returns the java executable to use. explicit wins when set; then
// JAVA_HOME, a working java on PATH, and finally well-known install dirs.
func Find(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		path, err := exec.LookPath(explicit)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %w", util.ErrJavaNotFound, explicit, err)
		}
		return path, nil
	}

	if home := os.Getenv("JAVA_HOME"); home != "" {
		candidate := filepath.Join(home, "bin", binaryName())
		if isFile(candidate) && Works(ctx, candidate) {
			logger.Logger().Debugf("using java from JAVA_HOME: %s", candidate)
			return candidate, nil
		}
		logger.Logger().Warnf("JAVA_HOME %s has no working java, looking elsewhere", home)
	}

	if path, err := exec.LookPath("java"); err == nil && Works(ctx, path) {
		logger.Logger().Debugf("using java from PATH: %s", path)
		return path, nil
	}

	for _, dir := range searchDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			for _, candidate := range homeCandidates(filepath.Join(dir, entry.Name())) {
				if isFile(candidate) {
					logger.Logger().Debugf("using java found at %s", candidate)
					return candidate, nil
				}
			}
		}
	}

	return "", util.ErrJavaNotFound
}

func homeCandidates(jdk string) []string {
	if runtime.GOOS == "darwin" {
		return []string{filepath.Join(jdk, "Contents", "Home", "bin", binaryName())}
	}
	return []string{filepath.Join(jdk, "bin", binaryName())}
}

// Works reports whether path runs `-version` successfully.
func Works(ctx context.Context, path string) bool {
	return exec.CommandContext(ctx, path, "-version").Run() == nil
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
