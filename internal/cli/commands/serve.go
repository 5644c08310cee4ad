package commands

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/leapstack-labs/leaplineage/internal/render"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Addr  string
	Watch bool
	Open  bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lineage graph with live reload",
		Long: `Build the lineage graph in memory and serve it over HTTP. With watch
enabled the mapping file is rebuilt on change and connected browsers reload
automatically.

The server also exposes the graph document at /graph.json for tooling.`,
		Example: `  # Serve on the default address
  leaplineage serve

  # Serve on a specific port and open the browser
  leaplineage serve --addr :8080 --open

  # Serve without watching the mapping file
  leaplineage serve --watch=false`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Rebuild when the mapping file changes")
	cmd.Flags().BoolVar(&opts.Open, "open", false, "Open the browser after starting")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer

	addr := cfg.Serve.Addr
	if cmd.Flags().Changed("addr") {
		addr = opts.Addr
	}
	watch := cfg.Serve.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	styles := render.DefaultStyles()
	if cfg.Style != "" {
		var err error
		styles, err = render.LoadStyles(cfg.Style)
		if err != nil {
			return err
		}
	}

	srv := render.NewDevServer(render.DevConfig{
		Addr:         addr,
		Input:        cfg.Input,
		Watch:        watch,
		Placeholders: cfg.Placeholders,
		Render: render.Options{
			Height:         cfg.Render.Height,
			Width:          cfg.Render.Width,
			DisablePhysics: !cfg.Render.Physics,
			Styles:         styles,
		},
		Logger: cmdCtx.Logger,
	})

	url := serveURL(addr)
	r.Printf("Serving lineage on %s\n", url)
	r.Println("Press Ctrl+C to stop")

	if opts.Open {
		go openBrowser(url)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	return srv.Run(ctx)
}

func serveURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url) //nolint:noctx
	case "linux":
		cmd = exec.Command("xdg-open", url) //nolint:noctx
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url) //nolint:noctx
	default:
		return
	}

	_ = cmd.Start()
}
