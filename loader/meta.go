package loader

import (
	"context"

	"github.com/mrnavastar/mclaunch/api"
	"github.com/mrnavastar/mclaunch/version"
)

// metaSource serves loaders whose profile is published ready-made by a
// metadata service.
type metaSource struct {
	profile  func(ctx context.Context, gameVersion string, loaderVersion string) (*version.LoaderProfile, error)
	versions func(ctx context.Context, gameVersion string) ([]api.LoaderVersion, error)
}

func (s metaSource) Profile(ctx context.Context, gameVersion string, loaderVersion string) (*version.LoaderProfile, error) {
	return s.profile(ctx, gameVersion, loaderVersion)
}

func (s metaSource) Versions(ctx context.Context, gameVersion string) ([]api.LoaderVersion, error) {
	return s.versions(ctx, gameVersion)
}
