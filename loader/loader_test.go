package loader

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/mrnavastar/mclaunch/api"
	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/util/fileutils"
	"github.com/mrnavastar/mclaunch/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jarBytes(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		entry, err := w.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

const neoforgeClientJSON = `{
	"id": "neoforge-20.4.190",
	"inheritsFrom": "1.20.4",
	"mainClass": "cpw.mods.bootstraplauncher.BootstrapLauncher",
	"arguments": {"game": ["--launchTarget", "forgeclient"], "jvm": ["-DlibraryDirectory=${library_directory}"]},
	"libraries": [{"name": "net.neoforged:neoforge:20.4.190:client", "downloads": {"artifact": {"path": "net/neoforged/neoforge/20.4.190/neoforge-20.4.190-client.jar", "url": "", "sha1": "", "size": 0}}}]
}`

type fixture struct {
	client  *api.Client
	inst    *Installer
	libs    string
	scratch string
	calls   []string
}

func newFixture(t *testing.T, jars map[string][]byte) *fixture {
	t.Helper()
	mux := http.NewServeMux()
	for path, body := range jars {
		body := body
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write(body) })
	}
	mux.HandleFunc("/fabric/versions/loader/1.20.4/0.15.7/profile/json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "fabric-loader-0.15.7-1.20.4", "inheritsFrom": "1.20.4", "mainClass": "net.fabricmc.loader.impl.launch.knot.KnotClient", "libraries": []}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	hosts := api.DefaultHosts()
	hosts.FabricMeta = srv.URL + "/fabric"
	hosts.QuiltMeta = srv.URL + "/quilt"
	hosts.ForgeMaven = srv.URL + "/forge"
	hosts.NeoForgeMaven = srv.URL + "/neoforge"
	client := api.New(hosts, 5*time.Second, "mclaunch-test")

	f := &fixture{client: client, libs: filepath.Join(t.TempDir(), "libraries"), scratch: t.TempDir()}
	f.inst = &Installer{
		Downloader:   client,
		LibrariesDir: f.libs,
		Java:         func(context.Context) (string, error) { return "java", nil },
		TempDir:      f.scratch,
	}
	return f
}

// succeed pretends to be an installer that generates one library.
func (f *fixture) succeed(t *testing.T) Runner {
	return func(ctx context.Context, dir string, name string, args ...string) (RunResult, error) {
		f.calls = append(f.calls, name+" "+strings.Join(args, " "))
		for _, stub := range fileutils.ProfileStubs {
			assert.FileExists(t, filepath.Join(dir, stub))
		}
		lib := filepath.Join(dir, "libraries", "net", "neoforged", "neoforge", "20.4.190", "neoforge-20.4.190-client.jar")
		require.NoError(t, os.MkdirAll(filepath.Dir(lib), 0755))
		require.NoError(t, os.WriteFile(lib, []byte("patched"), 0644))
		return RunResult{Stdout: "The client installed successfully"}, nil
	}
}

func assertScratchRemoved(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNeoForgeInstall(t *testing.T) {
	installer := jarBytes(t, map[string]string{
		"net/neoforged/installer/SimpleInstaller.class": "",
		"client.json":  neoforgeClientJSON,
		"version.json": `{"id": "wrong"}`,
	})
	f := newFixture(t, map[string][]byte{
		"/neoforge/releases/net/neoforged/neoforge/20.4.190/neoforge-20.4.190-installer.jar": installer,
	})
	f.inst.RunInstaller = f.succeed(t)

	profile, err := NewResolver(f.client, f.inst).ResolveProfile(context.Background(), NeoForge, "1.20.4", "20.4.190")
	require.NoError(t, err)
	assert.Equal(t, "neoforge-20.4.190", profile.ID)
	assert.Equal(t, "cpw.mods.bootstraplauncher.BootstrapLauncher", profile.MainClass)
	assert.Equal(t, version.StructuredArguments, profile.Arguments.Kind)

	require.Len(t, f.calls, 1)
	assert.Contains(t, f.calls[0], "java -cp ")
	assert.Contains(t, f.calls[0], "NeoForgeInstaller.java")

	data, err := os.ReadFile(filepath.Join(f.libs, "net", "neoforged", "neoforge", "20.4.190", "neoforge-20.4.190-client.jar"))
	require.NoError(t, err)
	assert.Equal(t, "patched", string(data))
	assertScratchRemoved(t, f.scratch)
}

func TestForgeInstallLegacyProfile(t *testing.T) {
	installer := jarBytes(t, map[string]string{
		"net/minecraftforge/installer/SimpleInstaller.class": "",
		"install_profile.json": `{"install": {}, "versionInfo": {"id": "1.12.2-forge-14.23.5.2860", "inheritsFrom": "1.12.2",
			"mainClass": "net.minecraft.launchwrapper.Launch",
			"minecraftArguments": "--tweakClass net.minecraftforge.fml.common.launcher.FMLTweaker",
			"libraries": [{"name": "net.minecraft:launchwrapper:1.12"}]}}`,
	})
	f := newFixture(t, map[string][]byte{
		"/forge/net/minecraftforge/forge/1.12.2-14.23.5.2860/forge-1.12.2-14.23.5.2860-installer.jar": installer,
	})
	f.inst.RunInstaller = f.succeed(t)

	profile, err := NewResolver(f.client, f.inst).ResolveProfile(context.Background(), Forge, "1.12.2", "14.23.5.2860")
	require.NoError(t, err)
	assert.Equal(t, "net.minecraft.launchwrapper.Launch", profile.MainClass)
	assert.Equal(t, version.LegacyArguments, profile.Arguments.Kind)
	require.Len(t, profile.Libraries, 1)
	assert.Contains(t, f.calls[0], "ForgeInstaller.java")
	assertScratchRemoved(t, f.scratch)
}

func TestInstallerFailure(t *testing.T) {
	installer := jarBytes(t, map[string]string{
		"net/minecraftforge/installer/SimpleInstaller.class": "",
		"version.json": `{}`,
	})
	f := newFixture(t, map[string][]byte{
		"/forge/net/minecraftforge/forge/1.20.1-47.2.0/forge-1.20.1-47.2.0-installer.jar": installer,
	})
	f.inst.RunInstaller = func(ctx context.Context, dir string, name string, args ...string) (RunResult, error) {
		return RunResult{ExitCode: 1, Stdout: "Error", Stderr: "java.io.IOException: nope"}, nil
	}

	_, err := NewResolver(f.client, f.inst).ResolveProfile(context.Background(), Forge, "1.20.1", "47.2.0")
	var installErr *util.InstallerExecutionError
	require.True(t, errors.As(err, &installErr))
	assert.Equal(t, 1, installErr.ExitCode)
	assert.Equal(t, "Error", installErr.Stdout)
	assert.Equal(t, "java.io.IOException: nope", installErr.Stderr)
	assertScratchRemoved(t, f.scratch)
	assert.NoDirExists(t, f.libs)
}

func TestUnknownInstallerLayout(t *testing.T) {
	installer := jarBytes(t, map[string]string{"com/example/Installer.class": ""})
	f := newFixture(t, map[string][]byte{
		"/neoforge/releases/net/neoforged/neoforge/20.4.190/neoforge-20.4.190-installer.jar": installer,
	})
	f.inst.RunInstaller = f.succeed(t)

	_, err := NewResolver(f.client, f.inst).ResolveProfile(context.Background(), NeoForge, "1.20.4", "20.4.190")
	assert.ErrorIs(t, err, util.ErrUnknownInstallerLayout)
	assert.Empty(t, f.calls)
	assertScratchRemoved(t, f.scratch)
}

func TestInstallerDownloadFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.inst.RunInstaller = f.succeed(t)

	_, err := NewResolver(f.client, f.inst).ResolveProfile(context.Background(), Forge, "1.20.1", "0.0.0")
	assert.True(t, util.IsHttpStatus(err))
	assertScratchRemoved(t, f.scratch)
}

func TestFabricProfileThroughResolver(t *testing.T) {
	f := newFixture(t, nil)
	r := NewResolver(f.client, f.inst)

	profile, err := r.ResolveProfile(context.Background(), Fabric, "1.20.4", "0.15.7")
	require.NoError(t, err)
	assert.Equal(t, "net.fabricmc.loader.impl.launch.knot.KnotClient", profile.MainClass)

	_, err = r.ResolveProfile(context.Background(), Quilt, "1.20.4", "0.26.0")
	assert.ErrorIs(t, err, util.ErrLoaderFetch)
}

type stubSource struct{ profile *version.LoaderProfile }

func (s stubSource) Profile(context.Context, string, string) (*version.LoaderProfile, error) {
	return s.profile, nil
}

func (s stubSource) Versions(context.Context, string) ([]api.LoaderVersion, error) {
	return []api.LoaderVersion{{Version: "1.0.0", Stable: true}}, nil
}

func TestWithSource(t *testing.T) {
	f := newFixture(t, nil)
	r := NewResolver(f.client, f.inst).WithSource(Quilt, stubSource{profile: &version.LoaderProfile{ID: "stub"}})

	profile, err := r.ResolveProfile(context.Background(), Quilt, "1.20.4", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "stub", profile.ID)

	versions, err := r.Versions(context.Background(), Quilt, "1.20.4")
	require.NoError(t, err)
	assert.Len(t, versions, 1)

	_, err = r.ResolveProfile(context.Background(), Kind("rift"), "1.13", "1.0")
	assert.ErrorIs(t, err, util.ErrUnknownLoader)
}

func TestParseKind(t *testing.T) {
	kind, ok, err := ParseKind("NeoForge")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, NeoForge, kind)

	_, ok, err = ParseKind("vanilla")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ParseKind("rift")
	assert.ErrorIs(t, err, util.ErrUnknownLoader)
}

func TestDriverTemplates(t *testing.T) {
	class, source, err := NeoForgedLayout.Driver()
	require.NoError(t, err)
	assert.Equal(t, "NeoForgeInstaller", class)
	assert.Contains(t, string(source), "import net.neoforged.installer.SimpleInstaller;")
	assert.Contains(t, string(source), "public class NeoForgeInstaller {")

	class, source, err = MinecraftForgeLayout.Driver()
	require.NoError(t, err)
	assert.Equal(t, "ForgeInstaller", class)
	assert.Contains(t, string(source), "import net.minecraftforge.installer.actions.Actions;")

	_, _, err = UnknownLayout.Driver()
	assert.ErrorIs(t, err, util.ErrUnknownInstallerLayout)
}
