package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/text"
	"github.com/mrnavastar/mclaunch/api"
	"github.com/mrnavastar/mclaunch/services"
	"github.com/mrnavastar/mclaunch/util"
	"github.com/mrnavastar/mclaunch/util/config"
	"github.com/mrnavastar/mclaunch/util/fileutils"
	"github.com/mrnavastar/mclaunch/util/logger"
	"github.com/urfave/cli/v2"
)

var cfg *config.Config

func main() {
	app := &cli.App{
		Name:  "mclaunch",
		Usage: "Install and launch Minecraft with or without mod loaders",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to the config file", Value: config.DefaultPath()},
			&cli.StringFlag{Name: "log-level", Usage: "override the configured log level"},
		},
		Before: setup,
		After: func(c *cli.Context) error {
			logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "Setup mclaunch on your system",
				ArgsUsage: "[game directory]",
				Action: func(c *cli.Context) error {
					dir := c.Args().Get(0)
					if dir == "" {
						dir = cfg.GameDir
					}
					if err := os.MkdirAll(dir, 0755); err != nil {
						return err
					}
					if err := fileutils.SaveGameDir(dir); err != nil {
						return err
					}

					path := c.String("config")
					if !fileutils.Exists(path) {
						cfg.GameDir = dir
						if err := cfg.Save(path); err != nil {
							return err
						}
					}
					fmt.Println("Using " + dir)
					fmt.Println("Done.")
					return nil
				},
			},
			{
				Name:    "versions",
				Aliases: []string{"ls"},
				Usage:   "List game versions",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "all", Usage: "include snapshots and old versions"},
				},
				Action: func(c *cli.Context) error {
					launcher := services.NewLauncher(cfg, nil)
					versions, err := launcher.Versions(c.Context, c.Bool("all"))
					if err != nil {
						return err
					}
					printVersions(versions)
					return nil
				},
			},
			{
				Name:      "loaders",
				Usage:     "List mod loader builds for a game version",
				ArgsUsage: "<fabric|quilt|forge|neoforge> <game version>",
				Action: func(c *cli.Context) error {
					args := c.Args()
					if args.Len() < 2 {
						return cli.Exit("usage: mclaunch loaders <loader> <game version>", 1)
					}

					launcher := services.NewLauncher(cfg, nil)
					versions, err := launcher.LoaderVersions(c.Context, args.Get(0), args.Get(1))
					if err != nil {
						return err
					}
					if len(versions) == 0 {
						fmt.Println("No " + args.Get(0) + " builds found for " + args.Get(1))
						return nil
					}
					printLoaderVersions(versions)
					return nil
				},
			},
			{
				Name:      "login-offline",
				Usage:     "Use an offline account",
				ArgsUsage: "<username>",
				Action: func(c *cli.Context) error {
					username := c.Args().Get(0)
					if username == "" {
						return cli.Exit("a username is required", 1)
					}

					account := util.NewOfflineAccount(username)
					if err := fileutils.SaveAccount(account); err != nil {
						return err
					}
					fmt.Println("Logged in as " + text.Bold.Sprint(account.Username) + " (" + account.UUID + ")")
					return nil
				},
			},
			{
				Name:  "logout",
				Usage: "Forget the stored account",
				Action: func(c *cli.Context) error {
					if err := fileutils.DeleteAccount(); err != nil {
						return err
					}
					fmt.Println("Logged out.")
					return nil
				},
			},
			{
				Name:      "offline-uuid",
				Usage:     "Print the offline uuid of a username",
				ArgsUsage: "<username>",
				Action: func(c *cli.Context) error {
					fmt.Println(util.OfflineUUID(c.Args().Get(0)))
					return nil
				},
			},
			{
				Name:      "launch",
				Aliases:   []string{"play"},
				Usage:     "Install and start a game version",
				ArgsUsage: "<version>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "loader", Usage: "fabric, quilt, forge or neoforge"},
					&cli.StringFlag{Name: "loader-version", Usage: "loader build to use"},
					&cli.StringFlag{Name: "username", Usage: "launch with an offline account"},
					&cli.StringFlag{Name: "java", Usage: "java executable"},
					&cli.StringFlag{Name: "min-memory", Usage: "initial heap, e.g. 1G"},
					&cli.StringFlag{Name: "max-memory", Usage: "maximum heap, e.g. 4G"},
					&cli.StringFlag{Name: "game-dir", Usage: "game directory"},
					&cli.BoolFlag{Name: "output", Usage: "print game output"},
				},
				Action: launch,
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func setup(c *cli.Context) error {
	var err error
	cfg, err = config.Load(c.String("config"))
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if c.IsSet("log-level") {
		level = c.String("log-level")
	}
	if err := logger.Init(level, cfg.Logging.JSON); err != nil {
		return err
	}

	if os.Getenv("MCLAUNCH_GAME_DIR") == "" {
		dir, err := fileutils.LoadGameDir()
		if err != nil {
			logger.Logger().Debugf("no stored game directory: %v", err)
		} else if dir != "" {
			cfg.GameDir = dir
		}
	}
	return nil
}

func launch(c *cli.Context) error {
	gameVersion := c.Args().Get(0)
	if gameVersion == "" {
		return cli.Exit("usage: mclaunch launch <version>", 1)
	}

	var account util.Account
	if username := c.String("username"); username != "" {
		account = util.NewOfflineAccount(username)
	} else {
		var err error
		account, err = fileutils.LoadAccount()
		if errors.Is(err, fileutils.ErrNoAccount) {
			return cli.Exit("no account, run `mclaunch login-offline <username>` or pass --username", 1)
		}
		if err != nil {
			return err
		}
	}

	emitter := newBarEmitter(c.Bool("output"))
	launcher := services.NewLauncher(cfg, emitter)
	process, err := launcher.Launch(c.Context, services.LaunchOptions{
		Version:       gameVersion,
		Loader:        c.String("loader"),
		LoaderVersion: c.String("loader-version"),
		Account:       account,
		MemoryMin:     c.String("min-memory"),
		MemoryMax:     c.String("max-memory"),
		JavaPath:      c.String("java"),
		GameDir:       c.String("game-dir"),
	})
	if err != nil {
		emitter.abort()
		return err
	}

	exit := process.Wait()
	if !exit.Success {
		return cli.Exit(fmt.Sprintf("game exited with code %d", exit.Code), exit.Code)
	}
	return nil
}

func printVersions(versions []api.VersionEntry) {
	lid := len("VERSION:")
	ltype := len("TYPE:")
	for _, v := range versions {
		if len(v.ID) > lid {
			lid = len(v.ID)
		}
		if len(v.Type) > ltype {
			ltype = len(v.Type)
		}
	}

	fmt.Println()
	fmt.Println(text.AlignDefault.Apply("VERSION:", lid+2) + text.AlignDefault.Apply("TYPE:", ltype+2) + "RELEASED:")
	for _, v := range versions {
		fmt.Println(text.AlignDefault.Apply(text.Bold.Sprint(v.ID), lid+2) + text.AlignDefault.Apply(v.Type, ltype+2) + v.ReleaseTime)
	}
	fmt.Println()
}

func printLoaderVersions(versions []api.LoaderVersion) {
	lversion := len("VERSION:")
	for _, v := range versions {
		if len(v.Version) > lversion {
			lversion = len(v.Version)
		}
	}

	fmt.Println()
	fmt.Println(text.AlignDefault.Apply("VERSION:", lversion+2) + "STABLE:")
	for _, v := range versions {
		stable := "no"
		if v.Stable {
			stable = text.Bold.Sprint("yes")
		}
		fmt.Println(text.AlignDefault.Apply(v.Version, lversion+2) + stable)
	}
	fmt.Println()
}
