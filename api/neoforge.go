package api

import (
	"context"
	"fmt"
	"strings"
)

// NeoForgeMapping maps a game version to the neoforged maven artifact that
// carries its builds and the version prefix those builds share.
type NeoForgeMapping func(gameVersion string) (artifact string, prefix string, ok bool)

// DefaultNeoForgeMapping: 1.20.1 lives under the legacy forge artifact with
// full game-version prefixes; 1.X.Y maps to X.Y. and 1.X to X.0.
func DefaultNeoForgeMapping(gameVersion string) (string, string, bool) {
	if gameVersion == "1.20.1" {
		return "forge", "1.20.1-", true
	}

	parts := strings.Split(gameVersion, ".")
	if parts[0] != "1" || len(parts) < 2 || len(parts) > 3 {
		return "", "", false
	}
	for _, p := range parts {
		if p == "" || strings.Trim(p, "0123456789") != "" {
			return "", "", false
		}
	}

	minor := "0"
	if len(parts) == 3 {
		minor = parts[2]
	}
	return "neoforge", parts[1] + "." + minor + ".", true
}

func (c *Client) neoForgeMapping() NeoForgeMapping {
	if c.NeoForgeMapping != nil {
		return c.NeoForgeMapping
	}
	return DefaultNeoForgeMapping
}

// NeoForgeInstallerURL builds the installer location for a full neoforge
// build id. Builds of the 1.20.1 era are published as the forge artifact.
func (c *Client) NeoForgeInstallerURL(loaderVersion string) string {
	artifact := "neoforge"
	if strings.HasPrefix(loaderVersion, "1.20.1-") {
		artifact = "forge"
	}
	return join(c.Hosts.NeoForgeMaven, "releases", "net", "neoforged", artifact, loaderVersion,
		artifact+"-"+loaderVersion+"-installer.jar")
}

func (c *Client) NeoForgeLoaderVersions(ctx context.Context, gameVersion string) ([]LoaderVersion, error) {
	artifact, prefix, ok := c.neoForgeMapping()(gameVersion)
	if !ok {
		return nil, nil
	}

	url := join(c.Hosts.NeoForgeMaven, "api", "maven", "versions", "releases", "net", "neoforged", artifact)
	var listing struct {
		Versions []string `json:"versions"`
	}
	found, err := c.listingJSON(ctx, url, &listing)
	if err != nil {
		return nil, fmt.Errorf("listing neoforge versions: %w", err)
	}
	if !found {
		return nil, nil
	}

	var versions []LoaderVersion
	for _, v := range listing.Versions {
		if strings.HasPrefix(v, prefix) {
			versions = append(versions, newLoaderVersion("neoforge", v, !strings.Contains(v, "-beta")))
		}
	}
	SortLoaderVersions(versions)
	return versions, nil
}
