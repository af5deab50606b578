package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitebuilder/internal/config"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Serve struct{} `cmd:"" help:"Serve the editor preview and published sites"`

	Render struct {
		Page     string `short:"p" required:"" help:"Page ID to render"`
		Mode     string `short:"m" help:"Render mode (editor|public)" default:"public"`
		Viewport string `help:"Viewport (desktop|mobile)" default:"desktop"`
		Output   string `short:"o" help:"Output file (stdout when empty)"`
	} `cmd:"" help:"Render a single page to HTML"`

	Publish struct {
		Website string `short:"w" required:"" help:"Website ID to publish"`
		Domain  string `short:"d" help:"Custom domain (subdomain publish when empty)"`
	} `cmd:"" help:"Publish a website"`

	Unpublish struct {
		Website string `short:"w" required:"" help:"Website ID to take offline"`
	} `cmd:"" help:"Unpublish a website"`
}

func main() {
	ctx := kong.Parse(&CLI)

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if CLI.Verbose {
		cfg.Logging.Level = "debug"
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	switch ctx.Command() {
	case "init":
		err = runInit(CLI.Config, CLI.Init.Force)
	case "serve":
		err = runServe(cfg)
	case "render":
		err = runRender(cfg, CLI.Render.Page, CLI.Render.Mode, CLI.Render.Viewport, CLI.Render.Output)
	case "publish":
		err = runPublish(cfg, CLI.Publish.Website, CLI.Publish.Domain)
	case "unpublish":
		err = runUnpublish(cfg, CLI.Unpublish.Website)
	default:
		err = fmt.Errorf("unknown command %q", ctx.Command())
	}
	if err != nil {
		slog.Error("Command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}

// loadConfig tolerates a missing default config file; init and local use
// run on pure defaults.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(CLI.Config); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return config.Load(CLI.Config)
}
