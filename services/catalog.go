package services

import (
	"context"

	"github.com/mrnavastar/mclaunch/api"
	"github.com/mrnavastar/mclaunch/loader"
	"github.com/mrnavastar/mclaunch/util"
)

// Versions lists launchable game versions, releases only unless all is set.
func (l *Launcher) Versions(ctx context.Context, all bool) ([]api.VersionEntry, error) {
	catalog, err := l.Client.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if all {
		return catalog.Versions, nil
	}
	return catalog.Releases(), nil
}

// LoaderVersions lists the builds of loader kind name available for gameVersion.
func (l *Launcher) LoaderVersions(ctx context.Context, name string, gameVersion string) ([]api.LoaderVersion, error) {
	kind, ok, err := loader.ParseKind(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrUnknownLoader
	}
	layout := Layout{Root: l.Config.GameDir}
	return l.loaders(layout, l.Config.JavaPath).Versions(ctx, kind, gameVersion)
}
