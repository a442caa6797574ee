package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mrnavastar/mclaunch/api"
	"github.com/mrnavastar/mclaunch/assets"
	"github.com/mrnavastar/mclaunch/events"
	"github.com/mrnavastar/mclaunch/java"
	"github.com/mrnavastar/mclaunch/library"
	"github.com/mrnavastar/mclaunch/loader"
	"github.com/mrnavastar/mclaunch/process"
	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/util/config"
	"github.com/mrnavastar/mclaunch/util/fileutils"
	"github.com/mrnavastar/mclaunch/util/logger"
	"github.com/mrnavastar/mclaunch/version"
)

type LaunchOptions struct {
	Version string
	// Loader is a loader kind name; empty or "vanilla" launches the plain game.
	Loader        string
	LoaderVersion string
	Account       util.Account
	MemoryMin     string
	MemoryMax     string
	JavaPath      string
	GameDir       string
}

// Layout is the on-disk cache under a game root.
type Layout struct {
	Root string
}

func (l Layout) Versions() string    { return filepath.Join(l.Root, "versions") }
func (l Layout) Libraries() string   { return filepath.Join(l.Root, "libraries") }
func (l Layout) NativesJars() string { return filepath.Join(l.Root, "natives") }
func (l Layout) Assets() string      { return filepath.Join(l.Root, "assets") }

func (l Layout) VersionDir(id string) string { return filepath.Join(l.Versions(), id) }
func (l Layout) ClientJar(id string) string  { return filepath.Join(l.VersionDir(id), id+".jar") }
func (l Layout) NativesDir(id string) string { return filepath.Join(l.VersionDir(id), "natives") }

type Launcher struct {
	Config  *config.Config
	Client  *api.Client
	Emitter events.Emitter
	Env     version.Environment
	// FindJava defaults to java.Find.
	FindJava func(ctx context.Context, explicit string) (string, error)
	// Loaders overrides the resolver built for each launch.
	Loaders *loader.Resolver
	// RunInstaller overrides how loader installers are executed.
	RunInstaller loader.Runner
}

func NewLauncher(cfg *config.Config, em events.Emitter) *Launcher {
	return &Launcher{
		Config:   cfg,
		Client:   api.New(cfg.Hosts, cfg.GetTimeout(), cfg.Network.UserAgent),
		Emitter:  em,
		Env:      version.CurrentEnvironment(),
		FindJava: java.Find,
	}
}

func (l *Launcher) emitter() events.Emitter {
	if l.Emitter == nil {
		return events.Nop{}
	}
	return l.Emitter
}

func (l *Launcher) findJava(ctx context.Context, explicit string) (string, error) {
	if l.FindJava == nil {
		return java.Find(ctx, explicit)
	}
	return l.FindJava(ctx, explicit)
}

func (l *Launcher) loaders(layout Layout, javaPath string) *loader.Resolver {
	if l.Loaders != nil {
		return l.Loaders
	}
	return loader.NewResolver(l.Client, &loader.Installer{
		Downloader:   l.Client,
		LibrariesDir: layout.Libraries(),
		Java:         func(ctx context.Context) (string, error) { return l.findJava(ctx, javaPath) },
		RunInstaller: l.RunInstaller,
	})
}

func (l *Launcher) withDefaults(opts LaunchOptions) LaunchOptions {
	if opts.GameDir == "" {
		opts.GameDir = l.Config.GameDir
	}
	if opts.JavaPath == "" {
		opts.JavaPath = l.Config.JavaPath
	}
	if opts.MemoryMin == "" {
		opts.MemoryMin = l.Config.Memory.Min
	}
	if opts.MemoryMax == "" {
		opts.MemoryMax = l.Config.Memory.Max
	}
	if opts.Account.UUID == "" && opts.Account.Kind == util.Offline {
		opts.Account.UUID = util.OfflineUUID(opts.Account.Username)
	}
	return opts
}

// Launch prepares everything version opts.Version needs and spawns the game.
// It returns once the process runs; the returned Process reports the rest
// through the emitter.
func (l *Launcher) Launch(ctx context.Context, opts LaunchOptions) (*process.Process, error) {
	opts = l.withDefaults(opts)
	em := l.emitter()
	layout := Layout{Root: opts.GameDir}
	logger.Logger().Infof("launching %s in %s", opts.Version, layout.Root)

	events.Report(em, events.StageStart, "", 0, 0)

	events.Report(em, events.StageCatalog, "", 0, 0)
	catalog, err := l.Client.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	entry, err := catalog.Find(opts.Version)
	if err != nil {
		return nil, err
	}

	events.Report(em, events.StageDescriptor, "", 0, 0)
	descriptor, err := l.Client.FetchDescriptor(ctx, entry.URL)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(layout.VersionDir(opts.Version), 0755); err != nil {
		return nil, fmt.Errorf("creating version directory: %w", err)
	}

	if err := l.applyLoader(ctx, layout, opts, descriptor); err != nil {
		return nil, err
	}

	if err := l.syncAssets(ctx, layout, descriptor); err != nil {
		return nil, err
	}

	clientJar, err := l.ensureClientJar(ctx, layout, opts.Version, descriptor)
	if err != nil {
		return nil, err
	}

	classpath, err := l.resolveLibraries(ctx, layout, opts.Version, descriptor)
	if err != nil {
		return nil, err
	}
	classpath = append([]string{clientJar}, classpath...)

	events.Report(em, events.StageJava, "", 0, 0)
	javaPath, err := l.findJava(ctx, opts.JavaPath)
	if err != nil {
		return nil, err
	}
	logger.Logger().Infof("using java %s", javaPath)

	subs := l.substitutions(layout, opts, descriptor, classpath)
	command := BuildArguments(descriptor, subs, l.Env, opts.Account, opts.MemoryMin, opts.MemoryMax)
	logger.Logger().Debugf("command: %s %v", javaPath, command)

	events.Report(em, events.StageSpawn, "", 0, 0)
	supervisor := &process.Supervisor{
		GameDir:     layout.Root,
		Emitter:     em,
		CrashWindow: l.Config.GetCrashWindow(),
	}
	return supervisor.Start(javaPath, command)
}

func (l *Launcher) applyLoader(ctx context.Context, layout Layout, opts LaunchOptions, descriptor *version.Descriptor) error {
	kind, ok, err := loader.ParseKind(opts.Loader)
	if err != nil || !ok {
		return err
	}

	events.Report(l.emitter(), events.StageLoader, fmt.Sprintf("Preparing %s", kind), 0, 0)
	profile, err := l.loaders(layout, opts.JavaPath).ResolveProfile(ctx, kind, opts.Version, opts.LoaderVersion)
	if err != nil {
		return err
	}
	logger.Logger().Infof("applying %s profile %s", kind, profile.ID)
	descriptor.ApplyProfile(profile)
	return nil
}

func (l *Launcher) syncAssets(ctx context.Context, layout Layout, descriptor *version.Descriptor) error {
	em := l.emitter()
	events.Report(em, events.StageAssets, "Verifying asset index", 0, 0)

	syncer := &assets.Synchronizer{
		Dir:          layout.Assets(),
		Fetcher:      l.Client,
		ResourceHost: l.Client.Hosts.Resources,
		Concurrency:  l.Config.GetAssetConcurrency(),
		Progress: func(current, total int64) {
			events.Report(em, events.StageAssets, "", current, total)
		},
	}
	result, err := syncer.Sync(ctx, assetIndexID(descriptor), descriptor.AssetIndex.URL)
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		logger.Logger().Warnf("%d of %d assets could not be downloaded", result.Failed, result.Total)
	}
	return nil
}

func (l *Launcher) ensureClientJar(ctx context.Context, layout Layout, id string, descriptor *version.Descriptor) (string, error) {
	jar := layout.ClientJar(id)
	if fileutils.Exists(jar) {
		return jar, nil
	}
	if descriptor.Downloads.Client == nil {
		return "", fmt.Errorf("%w: %s declares no client download", util.ErrMissingArtifactPath, id)
	}

	events.Report(l.emitter(), events.StageClientJar, "", 80, 100)
	if err := l.Client.Download(ctx, descriptor.Downloads.Client.URL, jar); err != nil {
		return "", fmt.Errorf("downloading client jar: %w", err)
	}
	return jar, nil
}

func (l *Launcher) resolveLibraries(ctx context.Context, layout Layout, id string, descriptor *version.Descriptor) ([]string, error) {
	em := l.emitter()
	events.Report(em, events.StageLibraries, "", 0, int64(len(descriptor.Libraries)))

	resolver := &library.Resolver{
		LibrariesDir:   layout.Libraries(),
		NativesJarsDir: layout.NativesJars(),
		NativesDir:     layout.NativesDir(id),
		Fetcher:        l.Client,
		Repository:     l.Client.Hosts.Libraries,
		Env:            l.Env,
		Progress: func(processed, total int64) {
			events.Report(em, events.StageLibraries, "", processed, total)
		},
	}
	result, err := resolver.Resolve(ctx, descriptor.Libraries)
	if err != nil {
		return nil, err
	}
	logger.Logger().Infof("libraries ready: %d on classpath, %d downloaded, %d natives extracted",
		len(result.Classpath), result.Downloaded, result.Extracted)
	return result.Classpath, nil
}

func assetIndexID(descriptor *version.Descriptor) string {
	if descriptor.AssetIndex.ID != "" {
		return descriptor.AssetIndex.ID
	}
	return descriptor.Assets
}
