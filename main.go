package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/lepinkainen/videodash/cmd"
	"github.com/lepinkainen/videodash/config"
	"github.com/lepinkainen/videodash/logging"
	"github.com/lepinkainen/videodash/types"
)

var Version = "dev"

type CLI struct {
	APIURL string `name:"api-url" help:"Video service base URL (overrides VIDEODASH_API_URL)"`

	Login     cmd.LoginCmd     `cmd:"" help:"Log in and store the session token"`
	Register  cmd.RegisterCmd  `cmd:"" help:"Create a new account"`
	Logout    cmd.LogoutCmd    `cmd:"" help:"Forget the stored session token"`
	List      cmd.ListCmd      `cmd:"" help:"List uploaded videos"`
	Upload    cmd.UploadCmd    `cmd:"" help:"Upload a video file"`
	Delete    cmd.DeleteCmd    `cmd:"" help:"Delete one or more videos"`
	Stream    cmd.StreamCmd    `cmd:"" help:"Print the playback URL of a video"`
	Dashboard cmd.DashboardCmd `cmd:"" default:"1" help:"Open the interactive dashboard"`

	Version kong.VersionFlag `help:"Show version information"`
}

func main() {
	config.LoadEnvFiles()

	var cli CLI
	appCtx := &types.AppContext{Version: Version}
	ctx := kong.Parse(&cli,
		kong.Name("videodash"),
		kong.Description("Manage your uploaded videos from the terminal."),
		kong.Vars{"version": Version},
		kong.Bind(appCtx),
	)

	cfg, err := config.Load()
	ctx.FatalIfErrorf(err)
	if cli.APIURL != "" {
		cfg.APIURL = cli.APIURL
	}
	appCtx.Config = cfg

	logger, closer, err := logging.New(cfg, Version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, logging disabled\n", err)
	}
	appCtx.Logger = logger

	err = ctx.Run()
	if closer != nil {
		_ = closer.Close()
	}
	ctx.FatalIfErrorf(err)
}
