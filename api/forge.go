package api

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/util/logger"
	"github.com/tidwall/gjson"
)

type mavenMetadata struct {
	Versions []string `xml:"versioning>versions>version"`
}

func (c *Client) ForgeInstallerURL(gameVersion string, loaderVersion string) string {
	full := gameVersion + "-" + loaderVersion
	return join(c.Hosts.ForgeMaven, "net", "minecraftforge", "forge", full, "forge-"+full+"-installer.jar")
}

// ForgeLoaderVersions lists forge builds for gameVersion from the maven
// metadata. The promoted recommended build is the only one marked stable.
func (c *Client) ForgeLoaderVersions(ctx context.Context, gameVersion string) ([]LoaderVersion, error) {
	recommended := c.forgeRecommended(ctx, gameVersion)

	url := join(c.Hosts.ForgeMaven, "net", "minecraftforge", "forge", "maven-metadata.xml")
	body, err := c.listing(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("listing forge versions: %w", err)
	}
	if body == nil {
		return nil, nil
	}

	var metadata mavenMetadata
	if err := xml.Unmarshal(body, &metadata); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", util.ErrParse, url, err)
	}

	prefix := gameVersion + "-"
	var versions []LoaderVersion
	for _, v := range metadata.Versions {
		if !strings.HasPrefix(v, prefix) {
			continue
		}
		build := strings.TrimPrefix(v, prefix)
		versions = append(versions, newLoaderVersion("forge", build, build == recommended))
	}
	SortLoaderVersions(versions)
	return versions, nil
}

func (c *Client) forgeRecommended(ctx context.Context, gameVersion string) string {
	body, err := c.get(ctx, c.Hosts.ForgePromotions)
	if err != nil {
		logger.Logger().Warnf("forge promotions unavailable: %v", err)
		return ""
	}
	key := strings.ReplaceAll(gameVersion, ".", `\.`) + "-recommended"
	return gjson.GetBytes(body, "promos."+key).String()
}
