// Copyright 2025 The uniserve Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the uniserve symbol lookup server and CLI.

uniserve resolves names such as "black star", "snowman" or ":)" into Unicode
symbols and emoji. Names come from UnicodeData.txt, an emoji metadata file
and optional custom overrides, merged into one table at startup.

# Usage

Start the msgpack server on stdin/stdout (the default command):

	uniserve
	uniserve serve --watch

Look something up once:

	uniserve query black star

Try queries interactively, or drive the input-method key contract by hand:

	uniserve repl
	uniserve keys

# Files

Datasets default to data/UnicodeData.txt and data/emoji.json, resolved
relative to the executable, the working directory and the config dir.
Custom overrides (custom.json or custom.toml, flat name = "char" maps) are
read from every settings dir, system dirs first, so the user's own file wins:

	/etc/xdg/uniserve, $XDG_CONFIG_DIRS/uniserve,
	~/.config/uniserve, $XDG_CONFIG_HOME/uniserve

# Configuration

config.toml is created with defaults in the user settings dir on first run:

	[data]
	unicode_data = "data/UnicodeData.txt"
	emoji_data = "data/emoji.json"
	custom_files = []

	[match]
	limit = 100
	keyword_generic_threshold = 20

	[server]
	max_query = 60
	watch = false

Command line flags override the file.
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	internalcli "github.com/bastiangx/uniserve/internal/cli"
	"github.com/bastiangx/uniserve/internal/logger"
	"github.com/bastiangx/uniserve/internal/utils"
	"github.com/bastiangx/uniserve/pkg/config"
	"github.com/bastiangx/uniserve/pkg/dictionary"
	"github.com/bastiangx/uniserve/pkg/ime"
	"github.com/bastiangx/uniserve/pkg/server"
	"github.com/bastiangx/uniserve/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"
)

const (
	Version = "0.3.0"
	AppName = "uniserve"
	gh      = "https://github.com/bastiangx/uniserve"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()

	app := &cli.App{
		Name:                   AppName,
		Usage:                  "Unicode symbol and emoji lookup by name",
		Version:                Version,
		HideVersion:            true,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Toggle debug logging",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path (default: <settings dir>/config.toml)",
			},
			&cli.StringFlag{
				Name:  "unicode-data",
				Usage: "Path to UnicodeData.txt",
			},
			&cli.StringFlag{
				Name:  "emoji-data",
				Usage: "Path to the emoji metadata JSON",
			},
			&cli.StringSliceFlag{
				Name:  "custom",
				Usage: "Custom override file, lowest precedence first (repeatable)",
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(c.Bool("debug"))
			return nil
		},
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the msgpack IPC server on stdin/stdout",
				Action: serveAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "watch",
						Aliases: []string{"w"},
						Usage:   "Reload when a custom override file changes",
					},
				},
			},
			{
				Name:      "query",
				Aliases:   []string{"q"},
				Usage:     "Print the candidates for a query",
				ArgsUsage: "<name...>",
				Action:    queryAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"l"},
						Usage:   "Number of candidates to print (0 = config default)",
					},
				},
			},
			{
				Name:   "repl",
				Usage:  "Interactive query loop",
				Action: replAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"l"},
						Usage:   "Number of candidates to print (0 = config default)",
					},
				},
			},
			{
				Name:   "keys",
				Usage:  "Feed key sequences to the input-method adapter",
				Action: keysAction,
			},
			{
				Name:   "version",
				Usage:  "Show current version",
				Action: versionAction,
			},
			{
				Name:   "paths",
				Usage:  "Show resolved settings dirs and dataset files",
				Action: pathsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// runtime bundles everything a command needs.
type runtime struct {
	config     *config.Config
	configPath string
	paths      *utils.PathResolver
	sources    dictionary.Sources
	resolver   *suggest.Resolver
}

// setup loads the config, applies flag overrides and builds the first table.
func setup(c *cli.Context) (*runtime, error) {
	pr, err := utils.NewPathResolver()
	if err != nil {
		log.Print("Either env is not set or system is not supported")
		return nil, fmt.Errorf("failed to initialize path resolver: %w", err)
	}

	cfg, cfgPath := config.LoadConfigWithPriority(c.String("config"), pr)
	if v := c.String("unicode-data"); v != "" {
		cfg.Data.UnicodeData = v
	}
	if v := c.String("emoji-data"); v != "" {
		cfg.Data.EmojiData = v
	}
	if v := c.StringSlice("custom"); len(v) > 0 {
		cfg.Data.CustomFiles = v
	}
	if c.Bool("watch") {
		cfg.Server.Watch = true
	}

	src := cfg.Sources(pr)
	log.Debug("Sources",
		"unicode", src.UnicodeData,
		"emoji", src.EmojiData,
		"custom", strings.Join(src.Custom, ","),
		"config", config.GetActiveConfigPath(cfgPath))

	loader := dictionary.NewLoader(src, cfg.LoaderOptions())
	resolver := suggest.NewLoaderResolver(loader, cfg.ResolverOptions())
	if err := resolver.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to build symbol table: %w", err)
	}
	if resolver.Table().IsDegenerate() {
		log.Warnf("Symbol table has only %d entries; check the dataset paths", resolver.Table().Len())
	}

	return &runtime{
		config:     cfg,
		configPath: cfgPath,
		paths:      pr,
		sources:    src,
		resolver:   resolver,
	}, nil
}

func serveAction(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	srv := server.NewServer(rt.resolver, rt.config, rt.sources.Custom)
	showStartupInfo(rt)
	return srv.Serve(c.Context)
}

func queryAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("query: missing <name>", 2)
	}
	rt, err := setup(c)
	if err != nil {
		return err
	}
	query := strings.Join(c.Args().Slice(), " ")
	cands := rt.resolver.Resolve(query)
	if len(cands) == 0 {
		return cli.Exit(fmt.Sprintf("no symbols found for '%s'", query), 1)
	}
	internalcli.PrintCandidates(os.Stdout, cands, limitFor(c, rt.config))
	return nil
}

func replAction(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	h := internalcli.NewInputHandler(rt.resolver, limitFor(c, rt.config), rt.config.Server.MaxQuery)
	return h.Start()
}

func keysAction(c *cli.Context) error {
	rt, err := setup(c)
	if err != nil {
		return err
	}
	adapter := ime.NewAdapter(rt.resolver, rt.config.CLI.PageSize)
	return internalcli.NewKeySession(adapter).Start()
}

func pathsAction(c *cli.Context) error {
	pr, err := utils.NewPathResolver()
	if err != nil {
		return err
	}
	internalcli.PrintInfo(os.Stdout, pr.GetRuntimeInfo())
	for i, f := range pr.CustomFiles() {
		state := "missing"
		if utils.FileExists(f) {
			state = "found"
		}
		fmt.Printf("custom[%d] %-7s %s\n", i, state, f)
	}
	return nil
}

func limitFor(c *cli.Context, cfg *config.Config) int {
	if l := c.Int("limit"); l > 0 {
		return l
	}
	return cfg.CLI.DefaultLimit
}

func versionAction(*cli.Context) error {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ uniserve ] Unicode symbols and emoji by name")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
	return nil
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(rt *runtime) {
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(currentLevel)

	stats := rt.resolver.Stats()
	log.Infof("%s %s, pid [ %d ]", AppName, Version, os.Getpid())
	log.Infof("symbols: %d entries, %d shortcuts", stats["entries"], stats["shortcuts"])
	log.Infof("config: ( %s )", config.GetActiveConfigPath(rt.configPath))
	if rt.config.Server.Watch {
		log.Infof("watching %d override files", len(rt.sources.Custom))
	}
	log.Info("status: ready")
}
