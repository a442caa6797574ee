package args

import (
	"encoding/json"
	"testing"

	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var linux64 = version.Environment{OS: "linux", Arch: "x64"}

func TestSubstituteFlat(t *testing.T) {
	assert.Equal(t, "--user Steve", SubstituteFlat("--user ${name}", Substitutions{"${name}": "Steve"}))
	assert.Equal(t, "${unknown}", SubstituteFlat("${unknown}", Substitutions{"${name}": "Steve"}))
	assert.Equal(t, "${name}", SubstituteFlat("${a}", Substitutions{"${a}": "${name}"}))
}

func TestExpand(t *testing.T) {
	var items []version.ArgumentItem
	require.NoError(t, json.Unmarshal([]byte(`[
		"--username", "${auth_player_name}",
		{"rules": [{"action": "allow", "features": {"is_demo_user": true}}], "value": "--demo"},
		{"rules": [{"action": "allow", "features": {"has_custom_resolution": true}}], "value": ["--width", "${resolution_width}"]},
		{"rules": [{"action": "allow", "os": {"name": "linux"}}], "value": ["-Dos=linux", "-Dwidth=${resolution_width}"]},
		{"rules": [{"action": "allow", "os": {"name": "osx"}}], "value": "-XstartOnFirstThread"},
		"--gameDir", "${game_directory}"
	]`), &items))

	subs := Substitutions{"${auth_player_name}": "Steve", "${resolution_width}": "854", "${game_directory}": "/games/my mc"}
	got := Expand(items, subs, linux64)
	assert.Equal(t, []string{"--username", "Steve", "-Dos=linux", "-Dwidth=854", "--gameDir", "/games/my mc"}, got)
}

func TestExpandIgnoresDeclaredFeatures(t *testing.T) {
	items := []version.ArgumentItem{
		version.Conditional([]version.Rule{{Action: version.Allow, Features: map[string]bool{"is_quick_play_singleplayer": true}}}, "--quickPlaySingleplayer"),
	}
	env := linux64
	env.Features = map[string]bool{"is_quick_play_singleplayer": true}
	assert.Empty(t, Expand(items, nil, env))
}

func TestExpandLegacy(t *testing.T) {
	got := ExpandLegacy("--username ${auth_player_name}  --gameDir ${game_directory}", Substitutions{
		"${auth_player_name}": "Steve",
		"${game_directory}":   "/home/steve/my games",
	})
	assert.Equal(t, []string{"--username", "Steve", "--gameDir", "/home/steve/my games"}, got)
}

func TestAppendAuthFlags(t *testing.T) {
	ms := util.Account{Kind: util.Microsoft, Username: "Steve", Xuid: "2535"}

	got := AppendAuthFlags([]string{"--username", "Steve"}, ms)
	assert.Equal(t, []string{"--username", "Steve", "--xuid", "2535", "--clientId", PlaceholderClientID, "--userProperties", "{}"}, got)

	present := []string{"--xuid", "1", "--clientId", "c", "--userProperties", "{}"}
	assert.Equal(t, present, AppendAuthFlags(append([]string(nil), present...), ms))

	noXuid := util.Account{Kind: util.Microsoft, Username: "Steve"}
	assert.Equal(t, []string{"--clientId", PlaceholderClientID, "--userProperties", "{}"}, AppendAuthFlags(nil, noXuid))

	offline := util.NewOfflineAccount("Steve")
	assert.Equal(t, []string{"--username", "Steve"}, AppendAuthFlags([]string{"--username", "Steve"}, offline))
}

func TestFallbackGameArgs(t *testing.T) {
	got := FallbackGameArgs(Substitutions{"${auth_player_name}": "Steve", "${user_type}": "msa"})
	require.Len(t, got, 24)
	assert.Equal(t, []string{"--username", "Steve"}, got[:2])
	assert.Contains(t, got, "msa")
	assert.Contains(t, got, "--userProperties")
}
