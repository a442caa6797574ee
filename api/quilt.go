package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrnavastar/mclaunch/version"
)

func (c *Client) QuiltProfile(ctx context.Context, gameVersion string, loaderVersion string) (*version.LoaderProfile, error) {
	return c.fetchProfile(ctx, join(c.Hosts.QuiltMeta, "versions", "loader", gameVersion, loaderVersion, "profile", "json"))
}

// QuiltLoaderVersions lists quilt builds for gameVersion. Quilt meta has no
// stable flag; beta and alpha builds are treated as unstable.
func (c *Client) QuiltLoaderVersions(ctx context.Context, gameVersion string) ([]LoaderVersion, error) {
	entries, err := c.metaLoaderEntries(ctx, join(c.Hosts.QuiltMeta, "versions", "loader", gameVersion))
	if err != nil {
		return nil, fmt.Errorf("listing quilt versions: %w", err)
	}

	versions := make([]LoaderVersion, 0, len(entries))
	for _, e := range entries {
		v := e.Loader.Version
		stable := !strings.Contains(v, "-beta") && !strings.Contains(v, "-alpha")
		versions = append(versions, newLoaderVersion("quilt", v, stable))
	}
	SortLoaderVersions(versions)
	return versions, nil
}
