// Package library downloads the libraries of a merged descriptor, extracts
// their natives and assembles the classpath.
package library

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/util/fileutils"
	"github.com/mrnavastar/mclaunch/util/logger"
	"github.com/mrnavastar/mclaunch/version"
)

const reportEvery = 5

type Fetcher interface {
	Download(ctx context.Context, url string, dest string) error
}

type Resolver struct {
	LibrariesDir string
	// NativesJarsDir caches native classifier jars by their declared path.
	NativesJarsDir string
	// NativesDir receives extracted shared libraries. It is wiped by Resolve.
	NativesDir string
	Fetcher    Fetcher
	// Repository serves maven-style libraries that declare no base URL.
	Repository string
	Env        version.Environment
	// Progress receives processed/total library counts every few libraries.
	Progress func(processed, total int64)
}

type Result struct {
	Classpath  []string
	Downloaded int
	Extracted  int
}

// Resolve walks libs in order and returns the classpath entries they
// contribute. Files already on disk are never downloaded again.
func (r *Resolver) Resolve(ctx context.Context, libs []version.Library) (*Result, error) {
	if err := ResetNatives(r.NativesDir); err != nil {
		return nil, err
	}

	result := &Result{}
	total := int64(len(libs))
	for i, lib := range libs {
		processed := int64(i + 1)
		if processed%reportEvery == 0 && r.Progress != nil {
			r.Progress(processed, total)
		}

		if !version.ShouldUseLibrary(lib, r.Env) {
			logger.Logger().Debugf("skipping library %s", lib.Name)
			continue
		}
		if err := r.resolve(ctx, lib, result); err != nil {
			return nil, fmt.Errorf("library %s: %w", lib.Name, err)
		}
	}
	return result, nil
}

func (r *Resolver) resolve(ctx context.Context, lib version.Library, result *Result) error {
	if lib.Downloads == nil {
		return r.resolveMaven(ctx, lib, result)
	}

	if classifier, ok := lib.NativeClassifier(r.Env); ok {
		if native, found := lib.Downloads.Classifiers[classifier]; found {
			if err := r.resolveNative(ctx, lib, classifier, native, result); err != nil {
				return err
			}
			if lib.Downloads.Artifact != nil {
				return r.resolveArtifact(ctx, lib, *lib.Downloads.Artifact, result)
			}
			return nil
		}
	}

	if lib.Downloads.Artifact != nil {
		return r.resolveArtifact(ctx, lib, *lib.Downloads.Artifact, result)
	}
	return nil
}

func (r *Resolver) resolveNative(ctx context.Context, lib version.Library, classifier string, native version.DownloadInfo, result *Result) error {
	rel, err := artifactPath(lib, native, classifier)
	if err != nil {
		return err
	}
	jar := filepath.Join(r.NativesJarsDir, filepath.FromSlash(rel))
	if err := r.fetch(ctx, native.URL, jar, result); err != nil {
		return err
	}
	result.Classpath = append(result.Classpath, jar)

	n, err := ExtractNative(jar, r.NativesDir, lib.ExcludePatterns())
	if err != nil {
		return err
	}
	result.Extracted += n
	return nil
}

// resolveArtifact handles a declared artifact. One without a URL is
// generated locally by a loader installer and only used when present.
func (r *Resolver) resolveArtifact(ctx context.Context, lib version.Library, artifact version.DownloadInfo, result *Result) error {
	rel, err := artifactPath(lib, artifact, "")
	if err != nil {
		return err
	}
	dest := filepath.Join(r.LibrariesDir, filepath.FromSlash(rel))

	if artifact.URL == "" {
		if fileutils.Exists(dest) {
			result.Classpath = append(result.Classpath, dest)
		} else {
			logger.Logger().Warnf("local library %s not found at %s", lib.Name, dest)
		}
		return nil
	}

	if err := r.fetch(ctx, artifact.URL, dest, result); err != nil {
		return err
	}
	result.Classpath = append(result.Classpath, dest)
	return nil
}

// resolveMaven handles entries that only carry a coordinate and maybe a
// repository. Download failures are not fatal: the library may have been
// generated locally.
func (r *Resolver) resolveMaven(ctx context.Context, lib version.Library, result *Result) error {
	coord, err := version.ParseCoordinate(lib.Name)
	if err != nil {
		return err
	}
	rel := coord.Path()
	dest := filepath.Join(r.LibrariesDir, filepath.FromSlash(rel))

	repo := lib.URL
	if repo == "" {
		repo = r.Repository
	}
	url := strings.TrimSuffix(repo, "/") + "/" + rel

	if err := r.fetch(ctx, url, dest, result); err != nil {
		logger.Logger().Warnf("failed to download library %s: %v", lib.Name, err)
	}
	if !fileutils.Exists(dest) {
		logger.Logger().Warnf("library %s not found and download failed, leaving it off the classpath", lib.Name)
		return nil
	}
	result.Classpath = append(result.Classpath, dest)
	return nil
}

func (r *Resolver) fetch(ctx context.Context, url string, dest string, result *Result) error {
	if fileutils.Exists(dest) {
		return nil
	}
	logger.Logger().Debugf("downloading %s", url)
	if err := r.Fetcher.Download(ctx, url, dest); err != nil {
		return err
	}
	result.Downloaded++
	return nil
}

// artifactPath is the declared relative path of info, falling back to the
// path derived from the library coordinate.
func artifactPath(lib version.Library, info version.DownloadInfo, classifier string) (string, error) {
	if info.Path != "" {
		return info.Path, nil
	}
	coord, err := version.ParseCoordinate(lib.Name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", util.ErrMissingArtifactPath, lib.Name)
	}
	if classifier != "" {
		coord.Classifier = classifier
	}
	return coord.Path(), nil
}
