// Package version models launchable version descriptors: libraries,
// downloads, arguments and the platform rules that gate them.
package version

import (
	"encoding/json"
	"strings"
)

type Descriptor struct {
	ID           string        `json:"id"`
	Type         string        `json:"type"`
	Assets       string        `json:"assets,omitempty"`
	AssetIndex   AssetIndexRef `json:"assetIndex"`
	Downloads    Downloads     `json:"downloads"`
	Libraries    []Library     `json:"libraries"`
	MainClass    string        `json:"mainClass"`
	InheritsFrom string        `json:"inheritsFrom,omitempty"`
	Arguments    Arguments     `json:"-"`
}

type AssetIndexRef struct {
	ID        string `json:"id"`
	SHA1      string `json:"sha1"`
	Size      int64  `json:"size"`
	URL       string `json:"url"`
	TotalSize int64  `json:"totalSize"`
}

type Downloads struct {
	Client *DownloadInfo `json:"client,omitempty"`
	Server *DownloadInfo `json:"server,omitempty"`
}

// DownloadInfo describes one downloadable artifact. Path is relative to the
// libraries (or natives) directory and is unset for client/server jars.
type DownloadInfo struct {
	Path string `json:"path,omitempty"`
	SHA1 string `json:"sha1"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

type Library struct {
	Name      string            `json:"name"`
	Downloads *LibraryDownloads `json:"downloads,omitempty"`
	URL       string            `json:"url,omitempty"`
	Natives   map[string]string `json:"natives,omitempty"`
	Rules     []Rule            `json:"rules,omitempty"`
	Extract   *ExtractRules     `json:"extract,omitempty"`
}

type LibraryDownloads struct {
	Artifact    *DownloadInfo           `json:"artifact,omitempty"`
	Classifiers map[string]DownloadInfo `json:"classifiers,omitempty"`
}

type ExtractRules struct {
	Exclude []string `json:"exclude"`
}

// Key is the merge identity of a library: group:artifact, version-insensitive.
// Names with fewer than two parts have no key.
func (l Library) Key() (string, bool) {
	parts := strings.Split(l.Name, ":")
	if len(parts) < 2 {
		return "", false
	}
	return parts[0] + ":" + parts[1], true
}

// NativeClassifier returns the classifier name this library declares for
// env's OS, with the ${arch} placeholder expanded to the pointer width.
func (l Library) NativeClassifier(env Environment) (string, bool) {
	classifier, ok := l.Natives[env.OS]
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(classifier, "${arch}", env.PointerWidth()), true
}

func (l Library) ExcludePatterns() []string {
	if l.Extract == nil {
		return nil
	}
	return l.Extract.Exclude
}

func (d *Descriptor) UnmarshalJSON(data []byte) error {
	type plain Descriptor
	aux := struct {
		*plain
		RawArguments json.RawMessage `json:"arguments"`
		Legacy       *string         `json:"minecraftArguments"`
	}{plain: (*plain)(d)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	args, err := decodeArguments(aux.RawArguments, aux.Legacy)
	if err != nil {
		return err
	}
	d.Arguments = args
	return nil
}
