package services

import (
	"strings"

	"github.com/mrnavastar/mclaunch/args"
	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/version"
)

func (l *Launcher) substitutions(layout Layout, opts LaunchOptions, descriptor *version.Descriptor, classpath []string) args.Substitutions {
	separator := util.ClasspathSeparator()
	account := opts.Account

	return args.Substitutions{
		"${natives_directory}":   layout.NativesDir(opts.Version),
		"${launcher_name}":       l.Config.Launcher.Name,
		"${launcher_version}":    l.Config.Launcher.Version,
		"${classpath}":           strings.Join(classpath, separator),
		"${library_directory}":   layout.Libraries(),
		"${classpath_separator}": separator,
		"${version_name}":        opts.Version,
		"${game_directory}":      layout.Root,
		"${assets_root}":         layout.Assets(),
		"${assets_index_name}":   assetIndexID(descriptor),
		"${auth_player_name}":    account.Username,
		"${auth_uuid}":           account.UUID,
		"${auth_access_token}":   account.Token(),
		"${auth_xuid}":           account.XuidOrSentinel(),
		"${clientid}":            args.PlaceholderClientID,
		"${user_type}":           "msa",
		"${user_properties}":     "{}",
		"${version_type}":        descriptor.Type,
		"${resolution_width}":    "854",
		"${resolution_height}":   "480",
	}
}

// BuildArguments assembles everything after the java executable: memory
// bounds, jvm arguments, the main class and game arguments.
func BuildArguments(descriptor *version.Descriptor, subs args.Substitutions, env version.Environment, account util.Account, memoryMin string, memoryMax string) []string {
	command := []string{"-Xmx" + memoryMax, "-Xms" + memoryMin}

	var jvm, game []string
	switch descriptor.Arguments.Kind {
	case version.StructuredArguments:
		jvm = args.Expand(descriptor.Arguments.JVM, subs, env)
		game = args.Expand(descriptor.Arguments.Game, subs, env)
	case version.LegacyArguments:
		game = args.ExpandLegacy(descriptor.Arguments.Legacy, subs)
	case version.NoArguments:
	}

	if !util.Contains(jvm, "-cp") && !util.Contains(jvm, "-classpath") {
		command = append(command,
			"-Djava.library.path="+subs["${natives_directory}"],
			"-cp", subs["${classpath}"],
		)
	}
	command = append(command, jvm...)
	command = append(command, descriptor.MainClass)

	if len(game) == 0 {
		game = args.FallbackGameArgs(subs)
	}
	return append(command, args.AppendAuthFlags(game, account)...)
}
