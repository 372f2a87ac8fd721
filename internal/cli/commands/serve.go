package commands

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/leapstack-labs/leapui/internal/ui"
	"github.com/spf13/cobra"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port  int
	Open  bool
	Watch bool
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the preview server",
		Long: `Start a local HTTP server exposing compiled components.

The server provides:
- GET  /api/components                      component list
- GET  /api/components/{id}                 compiled module and CSS
- GET  /api/components/{id}/module          JSX source
- GET  /api/components/{id}/css             stylesheet
- GET  /api/components/{id}/layers/{layer}/style?width=N
- GET  /api/graph                           embedding graph
- GET  /api/builds, POST /api/builds        build history and triggers
- GET  /events                              reload notifications (SSE)

With --watch the document is reloaded on change and clients are notified.`,
		Example: `  # Start on the configured port
  leapui serve

  # Start on a custom port without watching
  leapui serve --port 3000 --watch=false`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: preview.port)")
	cmd.Flags().BoolVar(&opts.Open, "open", false, "Open the component list in a browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Reload the document on change")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer cleanup()

	preview := cmdCtx.Cfg.Preview
	port, watch, width := 0, opts.Watch, 0.0
	if preview != nil {
		port, width = preview.Port, preview.Width
		if !cmd.Flags().Changed("watch") {
			watch = preview.Watch
		}
	}
	if opts.Port != 0 {
		port = opts.Port
	}

	server := ui.NewServer(ui.Config{
		Engine:       cmdCtx.Engine,
		Port:         port,
		Watch:        watch,
		PreviewWidth: width,
		Logger:       cmdCtx.Logger,
	})

	url := fmt.Sprintf("http://localhost:%d", port)
	if opts.Open {
		go openBrowser(url + "/api/components")
	}

	r := cmdCtx.Renderer
	r.Println(fmt.Sprintf("Serving %s on %s", cmdCtx.Engine.DocumentPath(), url))
	r.Muted("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx)
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
