// Package assets keeps the content-addressed asset store of a game root in sync
// with a version's asset index.
package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/util/fileutils"
	"github.com/mrnavastar/mclaunch/util/logger"
	"github.com/mrnavastar/mclaunch/version"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultConcurrency = 50
	reportEvery        = 10
)

type Fetcher interface {
	Download(ctx context.Context, url string, dest string) error
}

type Synchronizer struct {
	// Dir is the assets root holding indexes/ and objects/.
	Dir          string
	Fetcher      Fetcher
	ResourceHost string
	Concurrency  int
	// Progress receives the number of objects present out of the index total.
	Progress func(current, total int64)
}

type Result struct {
	Total      int
	Downloaded int
	Failed     int
}

// job downloads one object. names counts the index entries sharing its hash.
type job struct {
	name   string
	object version.AssetObject
	names  int64
}

func (s *Synchronizer) IndexPath(indexID string) string {
	return filepath.Join(s.Dir, "indexes", indexID+".json")
}

func (s *Synchronizer) ObjectPath(object version.AssetObject) string {
	return filepath.Join(s.Dir, "objects", filepath.FromSlash(object.RelativePath()))
}

// Sync makes sure every object of the index is present. The index is fetched
// once per id and never revalidated. Objects that fail to download are
// logged and counted, never fatal. An index the host does not have yields an
// empty result.
func (s *Synchronizer) Sync(ctx context.Context, indexID string, indexURL string) (Result, error) {
	for _, dir := range []string{"indexes", "objects"} {
		if err := os.MkdirAll(filepath.Join(s.Dir, dir), 0755); err != nil {
			return Result{}, fmt.Errorf("creating assets directory: %w", err)
		}
	}

	index, err := s.loadIndex(ctx, indexID, indexURL)
	if util.IsHttpStatus(err) {
		logger.Logger().Warnf("asset index %s unavailable, continuing without assets: %v", indexID, err)
		return Result{}, nil
	}
	if err != nil {
		return Result{}, err
	}

	var (
		missing []*job
		byHash  = map[string]*job{}
		absent  int64
	)
	for name, object := range index.Objects {
		if !object.Valid() {
			logger.Logger().Warnf("skipping asset %s with malformed hash %q", name, object.Hash)
			continue
		}
		if fileutils.Exists(s.ObjectPath(object)) {
			continue
		}
		absent++
		if j, ok := byHash[object.Hash]; ok {
			j.names++
			continue
		}
		j := &job{name: name, object: object, names: 1}
		byHash[object.Hash] = j
		missing = append(missing, j)
	}

	total := int64(len(index.Objects))
	present := total - absent
	result := Result{Total: len(index.Objects)}
	logger.Logger().Infof("asset index %s: %d objects, %d missing in %d downloads", indexID, total, absent, len(missing))

	if len(missing) == 0 {
		s.report(total, total)
		return result, nil
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var (
		mu        sync.Mutex
		completed int
		covered   int64
		g         errgroup.Group
	)
	g.SetLimit(concurrency)

	for _, j := range missing {
		j := j
		g.Go(func() error {
			url := strings.TrimSuffix(s.ResourceHost, "/") + "/" + j.object.RelativePath()
			err := s.Fetcher.Download(ctx, url, s.ObjectPath(j.object))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Logger().Warnf("failed to download asset %s: %v", j.name, err)
				result.Failed++
			} else {
				result.Downloaded++
			}
			completed++
			covered += j.names
			if completed%reportEvery == 0 || completed == len(missing) {
				s.report(present+covered, total)
			}
			return nil
		})
	}
	_ = g.Wait()

	return result, nil
}

func (s *Synchronizer) loadIndex(ctx context.Context, indexID string, indexURL string) (*version.AssetIndex, error) {
	path := s.IndexPath(indexID)
	if !fileutils.Exists(path) {
		logger.Logger().Debugf("downloading asset index %s", indexID)
		if err := s.Fetcher.Download(ctx, indexURL, path); err != nil {
			return nil, fmt.Errorf("downloading asset index %s: %w", indexID, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading asset index %s: %w", indexID, err)
	}
	var index version.AssetIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("%w: asset index %s: %w", util.ErrParse, indexID, err)
	}
	return &index, nil
}

func (s *Synchronizer) report(current, total int64) {
	if s.Progress != nil {
		s.Progress(current, total)
	}
}
