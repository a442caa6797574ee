// Package args expands templated game and jvm arguments.
package args

import (
	"strings"

	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/version"
)

// PlaceholderClientID is handed to the game in place of a real client id.
const PlaceholderClientID = "00000000-0000-0000-0000-000000000000"

// Substitutions maps whole placeholders, "${name}", to their values.
type Substitutions map[string]string

// SubstituteFlat replaces every placeholder of subs in template. Values are
// inserted verbatim and never expanded again.
func SubstituteFlat(template string, subs Substitutions) string {
	for placeholder, value := range subs {
		template = strings.ReplaceAll(template, placeholder, value)
	}
	return template
}

// Expand renders structured argument items. Conditional items are kept only
// when their rules allow them under env. No optional features are supported,
// so a rule that needs a feature enabled never matches.
func Expand(items []version.ArgumentItem, subs Substitutions, env version.Environment) []string {
	env.Features = nil

	var out []string
	for _, item := range items {
		switch item.Kind {
		case version.LiteralItem:
			out = append(out, SubstituteFlat(item.Literal, subs))
		case version.ConditionalItem:
			if !version.Evaluate(item.Rules, env) {
				continue
			}
			for _, v := range item.Value {
				out = append(out, SubstituteFlat(v, subs))
			}
		}
	}
	return out
}

// ExpandLegacy splits a flat argument string on whitespace and substitutes
// each token, so values containing spaces stay one argument.
func ExpandLegacy(flat string, subs Substitutions) []string {
	fields := strings.Fields(flat)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, SubstituteFlat(f, subs))
	}
	return out
}

// AppendAuthFlags adds the identity flags microsoft accounts need and older
// descriptors lack. Offline accounts are returned unchanged.
func AppendAuthFlags(args []string, account util.Account) []string {
	if account.Kind != util.Microsoft {
		return args
	}
	xuid := account.XuidOrSentinel()
	if !util.Contains(args, "--xuid") && xuid != util.NoXuid {
		args = append(args, "--xuid", xuid)
	}
	if !util.Contains(args, "--clientId") {
		args = append(args, "--clientId", PlaceholderClientID)
	}
	if !util.Contains(args, "--userProperties") {
		args = append(args, "--userProperties", "{}")
	}
	return args
}

// FallbackGameArgs is used for descriptors that carry no arguments at all.
func FallbackGameArgs(subs Substitutions) []string {
	return ExpandLegacy(strings.Join([]string{
		"--username ${auth_player_name}",
		"--uuid ${auth_uuid}",
		"--accessToken ${auth_access_token}",
		"--xuid ${auth_xuid}",
		"--clientId ${clientid}",
		"--version ${version_name}",
		"--gameDir ${game_directory}",
		"--assetsDir ${assets_root}",
		"--assetIndex ${assets_index_name}",
		"--userType ${user_type}",
		"--versionType ${version_type}",
		"--userProperties ${user_properties}",
	}, " "), subs)
}
