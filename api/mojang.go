package api

import (
	"context"
	"fmt"

	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/version"
)

type VersionEntry struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Time        string `json:"time"`
	ReleaseTime string `json:"releaseTime"`
}

type Catalog struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []VersionEntry `json:"versions"`
}

// Releases returns the catalog entries of type "release", in catalog order.
func (c *Catalog) Releases() []VersionEntry {
	var releases []VersionEntry
	for _, v := range c.Versions {
		if v.Type == "release" {
			releases = append(releases, v)
		}
	}
	return releases
}

func (c *Catalog) Find(id string) (VersionEntry, error) {
	for _, v := range c.Versions {
		if v.ID == id {
			return v, nil
		}
	}
	return VersionEntry{}, fmt.Errorf("%w: %s", util.ErrVersionNotFound, id)
}

func (c *Client) FetchCatalog(ctx context.Context) (*Catalog, error) {
	var catalog Catalog
	if err := c.getJSON(ctx, c.Hosts.Manifest, &catalog); err != nil {
		return nil, fmt.Errorf("fetching version catalog: %w", err)
	}
	return &catalog, nil
}

func (c *Client) FetchDescriptor(ctx context.Context, url string) (*version.Descriptor, error) {
	var descriptor version.Descriptor
	if err := c.getJSON(ctx, url, &descriptor); err != nil {
		return nil, fmt.Errorf("fetching version descriptor: %w", err)
	}
	return &descriptor, nil
}
