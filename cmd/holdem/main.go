package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Serve   ServeCmd         `cmd:"" help:"Run the hold'em server"`
	Play    PlayCmd          `cmd:"" help:"Play a local game against bots"`
	Client  ClientCmd        `cmd:"" help:"Connect to a server as an interactive player"`
	Bot     BotCmd           `cmd:"" help:"Run a built-in bot against a server"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdem"),
		kong.Description("Multiplayer Texas Hold'em engine with bots, TUI and websocket play"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
