package api

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/util/logger"
	"github.com/mrnavastar/mclaunch/version"
	"golang.org/x/mod/semver"
)

// LoaderVersion is one installable build of a mod loader for a game version.
type LoaderVersion struct {
	ID      string `json:"id"`
	Loader  string `json:"loader"`
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

func newLoaderVersion(loader string, v string, stable bool) LoaderVersion {
	return LoaderVersion{ID: loader + "-" + v, Loader: loader, Version: v, Stable: stable}
}

// SortLoaderVersions orders stable builds first, newest first within each group.
func SortLoaderVersions(versions []LoaderVersion) {
	sort.SliceStable(versions, func(i, j int) bool {
		if versions[i].Stable != versions[j].Stable {
			return versions[i].Stable
		}
		return compareVersions(versions[i].Version, versions[j].Version) > 0
	})
}

func compareVersions(a, b string) int {
	va, vb := "v"+a, "v"+b
	if semver.IsValid(va) && semver.IsValid(vb) {
		return semver.Compare(va, vb)
	}

	pa, pb := numericParts(a), numericParts(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			if pa[i] > pb[i] {
				return 1
			}
			return -1
		}
	}
	switch {
	case len(pa) > len(pb):
		return 1
	case len(pa) < len(pb):
		return -1
	}
	return strings.Compare(a, b)
}

func numericParts(v string) []int {
	fields := strings.FieldsFunc(v, func(r rune) bool { return r < '0' || r > '9' })
	parts := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		parts = append(parts, n)
	}
	return parts
}

// fetchProfile GETs a loader profile JSON. Any failure to obtain it, status
// or transport, is a loader fetch error.
func (c *Client) fetchProfile(ctx context.Context, url string) (*version.LoaderProfile, error) {
	var profile version.LoaderProfile
	if err := c.getJSON(ctx, url, &profile); err != nil {
		if errors.Is(err, util.ErrParse) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", util.ErrLoaderFetch, err)
	}
	return &profile, nil
}

// listing GETs a loader version list endpoint. A non-success status means the
// upstream knows no builds for that game version, so it yields no body and no error.
func (c *Client) listing(ctx context.Context, url string) ([]byte, error) {
	body, err := c.get(ctx, url)
	if util.IsHttpStatus(err) {
		logger.Logger().Debugf("no loader versions at %s: %v", url, err)
		return nil, nil
	}
	return body, err
}

// listingJSON is listing for JSON endpoints. It reports whether the upstream
// had anything for the game version.
func (c *Client) listingJSON(ctx context.Context, url string, v interface{}) (bool, error) {
	err := c.getJSON(ctx, url, v)
	if util.IsHttpStatus(err) {
		logger.Logger().Debugf("no loader versions at %s: %v", url, err)
		return false, nil
	}
	return err == nil, err
}
