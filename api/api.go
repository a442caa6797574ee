package api

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mrnavastar/mclaunch/util"
)

// Hosts are the upstream endpoints the launcher talks to.
type Hosts struct {
	Manifest        string `yaml:"manifest"`
	Resources       string `yaml:"resources"`
	Libraries       string `yaml:"libraries"`
	FabricMeta      string `yaml:"fabric_meta"`
	QuiltMeta       string `yaml:"quilt_meta"`
	ForgeMaven      string `yaml:"forge_maven"`
	ForgePromotions string `yaml:"forge_promotions"`
	NeoForgeMaven   string `yaml:"neoforge_maven"`
}

func DefaultHosts() Hosts {
	return Hosts{
		Manifest:        "https://piston-meta.mojang.com/mc/game/version_manifest_v2.json",
		Resources:       "https://resources.download.minecraft.net",
		Libraries:       "https://libraries.minecraft.net/",
		FabricMeta:      "https://meta.fabricmc.net/v2",
		QuiltMeta:       "https://meta.quiltmc.org/v3",
		ForgeMaven:      "https://maven.minecraftforge.net",
		ForgePromotions: "https://files.minecraftforge.net/net/minecraftforge/forge/promotions_slim.json",
		NeoForgeMaven:   "https://maven.neoforged.net",
	}
}

type Client struct {
	Hosts Hosts
	// NeoForgeMapping overrides DefaultNeoForgeMapping when set.
	NeoForgeMapping NeoForgeMapping

	http *resty.Client
}

func New(hosts Hosts, timeout time.Duration, userAgent string) *Client {
	http := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
	return &Client{Hosts: hosts, http: http}
}

func join(base string, parts ...string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.Join(parts, "/")
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", util.ErrNetwork, url, err)
	}
	if !resp.IsSuccess() {
		return nil, &util.HttpStatusError{URL: url, StatusCode: resp.StatusCode(), Status: resp.Status()}
	}
	return resp.Body(), nil
}

// getJSON decodes the body of url into v. Anything that arrived but does not
// decode is a parse error; a missing response is a network error.
func (c *Client) getJSON(ctx context.Context, url string, v interface{}) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(v).
		ForceContentType("application/json").
		Get(url)
	if err != nil {
		if resp != nil && resp.RawResponse != nil && resp.Body() != nil {
			return fmt.Errorf("%w: %s: %w", util.ErrParse, url, err)
		}
		return fmt.Errorf("%w: GET %s: %w", util.ErrNetwork, url, err)
	}
	if !resp.IsSuccess() {
		return &util.HttpStatusError{URL: url, StatusCode: resp.StatusCode(), Status: resp.Status()}
	}
	return nil
}

// Download streams url into dest. The body lands in a sibling .part file
// first so an interrupted transfer never leaves a file the cache would trust.
func (c *Client) Download(ctx context.Context, url string, dest string) error {
	resp, err := c.http.R().SetContext(ctx).SetDoNotParseResponse(true).Get(url)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %w", util.ErrNetwork, url, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if !resp.IsSuccess() {
		return &util.HttpStatusError{URL: url, StatusCode: resp.StatusCode(), Status: resp.Status()}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dest, err)
	}

	part := dest + ".part"
	out, err := os.Create(part)
	if err != nil {
		return fmt.Errorf("creating %s: %w", part, err)
	}
	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		os.Remove(part)
		return fmt.Errorf("%w: reading %s: %w", util.ErrNetwork, url, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(part)
		return fmt.Errorf("closing %s: %w", part, err)
	}
	return os.Rename(part, dest)
}
