package version

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/mrnavastar/mclaunch/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modernDescriptor = `{
  "id": "1.20.4",
  "type": "release",
  "assetIndex": {"id": "12", "sha1": "abc", "size": 1, "url": "https://example/12.json", "totalSize": 2},
  "downloads": {"client": {"sha1": "c", "size": 3, "url": "https://example/client.jar"}},
  "mainClass": "net.minecraft.client.main.Main",
  "libraries": [
    {"name": "org.lwjgl:lwjgl:3.3.1", "downloads": {"artifact": {"path": "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1.jar", "url": "https://example/lwjgl.jar", "sha1": "x", "size": 1}}},
    {"name": "org.lwjgl:lwjgl:3.3.1:natives-linux", "rules": [{"action": "allow", "os": {"name": "linux"}}]}
  ],
  "arguments": {
    "game": ["--username", "${auth_player_name}", {"rules": [{"action": "allow", "features": {"is_demo_user": true}}], "value": "--demo"}],
    "jvm": [{"rules": [{"action": "allow", "os": {"name": "osx"}}], "value": ["-XstartOnFirstThread"]}, "-cp", "${classpath}"]
  }
}`

func TestDescriptorStructuredArguments(t *testing.T) {
	var d Descriptor
	require.NoError(t, json.Unmarshal([]byte(modernDescriptor), &d))

	assert.Equal(t, "1.20.4", d.ID)
	assert.Equal(t, "12", d.AssetIndex.ID)
	require.NotNil(t, d.Downloads.Client)
	assert.Equal(t, "https://example/client.jar", d.Downloads.Client.URL)
	require.Len(t, d.Libraries, 2)

	require.Equal(t, StructuredArguments, d.Arguments.Kind)
	require.Len(t, d.Arguments.Game, 3)
	assert.Equal(t, Literal("--username"), d.Arguments.Game[0])
	assert.Equal(t, ConditionalItem, d.Arguments.Game[2].Kind)
	assert.Equal(t, ArgumentValue{"--demo"}, d.Arguments.Game[2].Value)

	require.Len(t, d.Arguments.JVM, 3)
	assert.Equal(t, ArgumentValue{"-XstartOnFirstThread"}, d.Arguments.JVM[0].Value)
	assert.Equal(t, "osx", d.Arguments.JVM[0].Rules[0].OS.Name)
}

func TestDescriptorLegacyArguments(t *testing.T) {
	var d Descriptor
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1.8.9","minecraftArguments":"--username ${auth_player_name}"}`), &d))
	assert.Equal(t, LegacyArguments, d.Arguments.Kind)
	assert.Equal(t, "--username ${auth_player_name}", d.Arguments.Legacy)
	assert.Empty(t, d.Arguments.Game)
}

func TestDescriptorNoArguments(t *testing.T) {
	var d Descriptor
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a1.0"}`), &d))
	assert.Equal(t, NoArguments, d.Arguments.Kind)
}

func TestDescriptorMalformedArgument(t *testing.T) {
	var d Descriptor
	err := json.Unmarshal([]byte(`{"id":"x","arguments":{"game":[42]}}`), &d)
	assert.Error(t, err)
}

func TestLibraryNativeClassifier(t *testing.T) {
	lib := Library{Natives: map[string]string{"windows": "natives-windows-${arch}", "linux": "natives-linux"}}

	c, ok := lib.NativeClassifier(Environment{OS: "windows", Arch: "x86"})
	require.True(t, ok)
	assert.Equal(t, "natives-windows-32", c)

	c, ok = lib.NativeClassifier(linux64)
	require.True(t, ok)
	assert.Equal(t, "natives-linux", c)

	_, ok = lib.NativeClassifier(Environment{OS: "osx"})
	assert.False(t, ok)
}

func TestParseCoordinate(t *testing.T) {
	c, err := ParseCoordinate("net.fabricmc:fabric-loader:0.15.11")
	require.NoError(t, err)
	assert.Equal(t, "net/fabricmc/fabric-loader/0.15.11/fabric-loader-0.15.11.jar", c.Path())

	c, err = ParseCoordinate("net.minecraftforge:forge:1.20.1-47.2.0:client")
	require.NoError(t, err)
	assert.Equal(t, "net/minecraftforge/forge/1.20.1-47.2.0/forge-1.20.1-47.2.0-client.jar", c.Path())

	c, err = ParseCoordinate("de.oceanlabs.mcp:mcp_config:1.20.1-20230612.114412@zip")
	require.NoError(t, err)
	assert.Equal(t, "de/oceanlabs/mcp/mcp_config/1.20.1-20230612.114412/mcp_config-1.20.1-20230612.114412.zip", c.Path())

	_, err = ParseCoordinate("justaname")
	assert.True(t, errors.Is(err, util.ErrMissingArtifactPath))
}

func TestAssetObjectPath(t *testing.T) {
	obj := AssetObject{Hash: "bdf48ef6b5d0d23bbb02e17d04865216179f510a"}
	assert.Equal(t, "bd/bdf48ef6b5d0d23bbb02e17d04865216179f510a", obj.RelativePath())
	assert.True(t, obj.Valid())
	assert.False(t, AssetObject{Hash: "a"}.Valid())
}
