// Package loader resolves mod loader profiles, the overlays fabric, quilt,
// forge and neoforge put on top of a vanilla version descriptor.
package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrnavastar/mclaunch/api"
	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/version"
)

type Kind string

const (
	Fabric   Kind = "fabric"
	Quilt    Kind = "quilt"
	Forge    Kind = "forge"
	NeoForge Kind = "neoforge"
)

var Kinds = []Kind{Fabric, Quilt, Forge, NeoForge}

// ParseKind accepts a loader name in any case. "" and "vanilla" mean no
// loader and return ok=false without error.
func ParseKind(name string) (kind Kind, ok bool, err error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "vanilla" {
		return "", false, nil
	}
	for _, k := range Kinds {
		if Kind(name) == k {
			return k, true, nil
		}
	}
	return "", false, fmt.Errorf("%w: %s", util.ErrUnknownLoader, name)
}

// Source produces profiles and lists builds for one loader kind.
type Source interface {
	Profile(ctx context.Context, gameVersion string, loaderVersion string) (*version.LoaderProfile, error)
	Versions(ctx context.Context, gameVersion string) ([]api.LoaderVersion, error)
}

type Resolver struct {
	sources map[Kind]Source
}

// NewResolver wires the metadata loaders to client and the installer
// loaders to inst.
func NewResolver(client *api.Client, inst *Installer) *Resolver {
	return &Resolver{sources: map[Kind]Source{
		Fabric: metaSource{profile: client.FabricProfile, versions: client.FabricLoaderVersions},
		Quilt:  metaSource{profile: client.QuiltProfile, versions: client.QuiltLoaderVersions},
		Forge: installerSource{
			kind:      Forge,
			inst:      inst,
			url:       client.ForgeInstallerURL,
			entries:   []string{"version.json", "install_profile.json"},
			listBuild: client.ForgeLoaderVersions,
		},
		NeoForge: installerSource{
			kind:      NeoForge,
			inst:      inst,
			url:       func(_ string, loaderVersion string) string { return client.NeoForgeInstallerURL(loaderVersion) },
			entries:   []string{"client.json", "version.json"},
			listBuild: client.NeoForgeLoaderVersions,
		},
	}}
}

// WithSource replaces the source used for kind.
func (r *Resolver) WithSource(kind Kind, source Source) *Resolver {
	r.sources[kind] = source
	return r
}

func (r *Resolver) source(kind Kind) (Source, error) {
	source, ok := r.sources[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", util.ErrUnknownLoader, kind)
	}
	return source, nil
}

func (r *Resolver) ResolveProfile(ctx context.Context, kind Kind, gameVersion string, loaderVersion string) (*version.LoaderProfile, error) {
	source, err := r.source(kind)
	if err != nil {
		return nil, err
	}
	profile, err := source.Profile(ctx, gameVersion, loaderVersion)
	if err != nil {
		return nil, fmt.Errorf("resolving %s %s profile: %w", kind, loaderVersion, err)
	}
	return profile, nil
}

func (r *Resolver) Versions(ctx context.Context, kind Kind, gameVersion string) ([]api.LoaderVersion, error) {
	source, err := r.source(kind)
	if err != nil {
		return nil, err
	}
	return source.Versions(ctx, gameVersion)
}
