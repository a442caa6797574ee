package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mrnavastar/mclaunch/api"
	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/util/fileutils"
	"github.com/mrnavastar/mclaunch/util/logger"
	"github.com/mrnavastar/mclaunch/version"
	"github.com/tidwall/gjson"
)

type Downloader interface {
	Download(ctx context.Context, url string, dest string) error
}

// RunResult is the captured outcome of an installer process.
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes name with args in dir. A non-zero exit is reported through
// RunResult, not as an error.
type Runner func(ctx context.Context, dir string, name string, args ...string) (RunResult, error)

// Installer runs loader installer jars in throwaway scratch directories and
// moves the libraries they generate into the shared library cache.
type Installer struct {
	Downloader   Downloader
	LibrariesDir string
	// Java resolves the java executable the installer runs on.
	Java func(ctx context.Context) (string, error)
	// TempDir holds scratch directories; os.TempDir() when empty.
	TempDir string
	// RunInstaller defaults to ExecRunner.
	RunInstaller Runner
}

func ExecRunner(ctx context.Context, dir string, name string, args ...string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	result := RunResult{Stdout: stdoutBuf.String(), Stderr: stderrBuf.String()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	return result, err
}

// installerSource serves loaders that are only published as installer jars.
type installerSource struct {
	kind      Kind
	inst      *Installer
	url       func(gameVersion string, loaderVersion string) string
	entries   []string
	listBuild func(ctx context.Context, gameVersion string) ([]api.LoaderVersion, error)
}

func (s installerSource) Versions(ctx context.Context, gameVersion string) ([]api.LoaderVersion, error) {
	return s.listBuild(ctx, gameVersion)
}

func (s installerSource) Profile(ctx context.Context, gameVersion string, loaderVersion string) (*version.LoaderProfile, error) {
	return s.inst.Install(ctx, s.kind, s.url(gameVersion, loaderVersion), s.entries)
}

// Install downloads the installer at url, runs it and returns the profile
// read from the first of entries found in the jar. The scratch directory is
// removed on every path.
func (i *Installer) Install(ctx context.Context, kind Kind, url string, entries []string) (*version.LoaderProfile, error) {
	tmp := i.TempDir
	if tmp == "" {
		tmp = os.TempDir()
	}
	scratch := filepath.Join(tmp, fmt.Sprintf("%s_install_%s", kind, uuid.New()))
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			logger.Logger().Warnf("failed to remove %s: %v", scratch, err)
		}
	}()

	jar := filepath.Join(scratch, "installer.jar")
	logger.Logger().Infof("downloading %s installer: %s", kind, url)
	if err := i.Downloader.Download(ctx, url, jar); err != nil {
		return nil, fmt.Errorf("downloading %s installer: %w", kind, err)
	}

	if err := i.run(ctx, kind, scratch, jar); err != nil {
		return nil, err
	}

	generated := filepath.Join(scratch, "libraries")
	if fileutils.Exists(generated) {
		logger.Logger().Debugf("copying generated libraries to %s", i.LibrariesDir)
		if err := fileutils.CopyDir(generated, i.LibrariesDir); err != nil {
			return nil, fmt.Errorf("copying generated libraries: %w", err)
		}
	} else {
		logger.Logger().Warnf("%s installer generated no libraries", kind)
	}

	name, content, err := fileutils.ReadJarEntry(jar, entries...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s installer: %w", util.ErrParse, kind, err)
	}
	profile, err := parseInstallerProfile(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s in %s installer: %w", util.ErrParse, name, kind, err)
	}
	return profile, nil
}

func (i *Installer) run(ctx context.Context, kind Kind, scratch string, jar string) error {
	layout, err := DetectLayout(jar)
	if err != nil {
		return err
	}
	logger.Logger().Debugf("detected %s installer layout %s", kind, layout)

	class, source, err := layout.Driver()
	if err != nil {
		return err
	}
	driver := filepath.Join(scratch, class+".java")
	if err := os.WriteFile(driver, source, 0644); err != nil {
		return fmt.Errorf("writing installer driver: %w", err)
	}
	if err := fileutils.WriteProfileStubs(scratch); err != nil {
		return fmt.Errorf("writing launcher profile stubs: %w", err)
	}

	javaPath, err := i.Java(ctx)
	if err != nil {
		return err
	}

	runner := i.RunInstaller
	if runner == nil {
		runner = ExecRunner
	}
	logger.Logger().Infof("running %s installer", kind)
	result, err := runner(ctx, scratch, javaPath, "-cp", jar, driver)
	if err != nil {
		return fmt.Errorf("executing %s installer: %w", kind, err)
	}
	if result.ExitCode != 0 {
		logger.Logger().Errorf("%s installer stdout: %s", kind, result.Stdout)
		logger.Logger().Errorf("%s installer stderr: %s", kind, result.Stderr)
		return &util.InstallerExecutionError{ExitCode: result.ExitCode, Stdout: result.Stdout, Stderr: result.Stderr}
	}
	return nil
}

// parseInstallerProfile reads a version profile, unwrapping the versionInfo
// object legacy install_profile.json files nest it under.
func parseInstallerProfile(content []byte) (*version.LoaderProfile, error) {
	if nested := gjson.GetBytes(content, "versionInfo"); nested.IsObject() {
		content = []byte(nested.Raw)
	}
	var profile version.LoaderProfile
	if err := json.Unmarshal(content, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
