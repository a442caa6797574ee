package process

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrnavastar/mclaunch/events"
	"github.com/mrnavastar/mclaunch/util/logger"
)

const DefaultCrashWindow = 300 * time.Second

// FindCrashReport returns the newest crash-reports/*.txt under gameDir when it
// was modified less than window before now.
func FindCrashReport(gameDir string, window time.Duration, now time.Time) (events.Crash, bool) {
	dir := filepath.Join(gameDir, "crash-reports")
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Logger().Debugf("no crash reports: %v", err)
		return events.Crash{}, false
	}

	var (
		newest   string
		newestAt time.Time
	)
	for _, entry := range entries {
		if !entry.Type().IsRegular() || !strings.EqualFold(filepath.Ext(entry.Name()), ".txt") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestAt) {
			newest = filepath.Join(dir, entry.Name())
			newestAt = info.ModTime()
		}
	}
	if newest == "" {
		return events.Crash{}, false
	}

	if age := now.Sub(newestAt); age >= window {
		logger.Logger().Debugf("newest crash report %s is %s old, ignoring", newest, age.Round(time.Second))
		return events.Crash{}, false
	}

	content, err := os.ReadFile(newest)
	if err != nil {
		logger.Logger().Warnf("failed to read crash report %s: %v", newest, err)
		return events.Crash{}, false
	}
	return events.Crash{Path: newest, Content: string(content)}, true
}
