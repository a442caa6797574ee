package api

import (
	"context"
	"fmt"

	"github.com/mrnavastar/mclaunch/version"
)

type metaLoaderEntry struct {
	Loader struct {
		Version string `json:"version"`
		Stable  *bool  `json:"stable"`
	} `json:"loader"`
}

func (c *Client) FabricProfile(ctx context.Context, gameVersion string, loaderVersion string) (*version.LoaderProfile, error) {
	return c.fetchProfile(ctx, join(c.Hosts.FabricMeta, "versions", "loader", gameVersion, loaderVersion, "profile", "json"))
}

func (c *Client) FabricLoaderVersions(ctx context.Context, gameVersion string) ([]LoaderVersion, error) {
	entries, err := c.metaLoaderEntries(ctx, join(c.Hosts.FabricMeta, "versions", "loader", gameVersion))
	if err != nil {
		return nil, fmt.Errorf("listing fabric versions: %w", err)
	}

	versions := make([]LoaderVersion, 0, len(entries))
	for _, e := range entries {
		stable := e.Loader.Stable != nil && *e.Loader.Stable
		versions = append(versions, newLoaderVersion("fabric", e.Loader.Version, stable))
	}
	SortLoaderVersions(versions)
	return versions, nil
}

func (c *Client) metaLoaderEntries(ctx context.Context, url string) ([]metaLoaderEntry, error) {
	var entries []metaLoaderEntry
	if _, err := c.listingJSON(ctx, url, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
