package main

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kanbd/kanbd/internal/board"
	"github.com/kanbd/kanbd/internal/config"
	"github.com/kanbd/kanbd/internal/ui"
	"github.com/kanbd/kanbd/internal/ui/api"
	"github.com/kanbd/kanbd/ui/static"
)

var (
	serveHost        string
	servePort        int
	serveOpen        bool
	serveAllowRemote bool
	serveAuthToken   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the board web server",
	Long: `Start a local HTTP server hosting the kanban board.

The server binds to a loopback interface by default and opens your browser
unless --open=false. Both status directories are created if absent. Binding
a non-loopback host requires --allow-remote and bearer-token auth.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", config.DefaultHost, "Host to bind to")
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port for the board server")
	serveCmd.Flags().BoolVar(&serveOpen, "open", true, "Auto-open browser")
	serveCmd.Flags().BoolVar(&serveAllowRemote, "allow-remote", false, "Permit binding to non-loopback addresses (requires auth token)")
	serveCmd.Flags().StringVar(&serveAuthToken, "auth-token", "", "Use the provided auth token instead of generating one")

	_ = config.BindFlag("host", serveCmd.Flags().Lookup("host"))
	_ = config.BindFlag("port", serveCmd.Flags().Lookup("port"))
	_ = config.BindFlag("open", serveCmd.Flags().Lookup("open"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	dir := config.Dir()
	config.LoadBoardConfig(dir)

	b := board.New(dir)
	if err := b.EnsureDirs(); err != nil {
		return err
	}

	addr := net.JoinHostPort(config.Host(), strconv.Itoa(config.Port()))
	requireRemoteAuth, err := ui.DetermineAccess(addr, serveAllowRemote)
	if err != nil {
		return err
	}

	token := strings.TrimSpace(serveAuthToken)
	requireAuth := requireRemoteAuth || token != ""
	if requireAuth && token == "" {
		token, err = generateAuthToken()
		if err != nil {
			return fmt.Errorf("generate auth token: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "auth token: %s\n", token)
	}

	events := api.NewLocalEventDispatcher(16)
	handler, err := ui.NewHandler(ui.HandlerConfig{
		StaticFS:    static.Files,
		RequireAuth: requireAuth,
		AuthToken:   token,
		Register: func(mux *http.ServeMux) {
			api.Register(mux, b, events)
		},
	})
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	url := fmt.Sprintf("http://%s", ln.Addr().String())
	fmt.Fprintf(cmd.OutOrStdout(), "kanbd board for %s at %s\n", dir, url)
	fmt.Fprintf(cmd.OutOrStdout(), "press ctrl+c to stop\n")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Handler: handler,
		// No WriteTimeout: the SSE stream holds its connection open.
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return b.Watch(ctx, func() {
			events.Publish(api.ChangeEvent{Type: "changed"})
		})
	})

	g.Go(func() error {
		<-ctx.Done()
		return srv.Close()
	})

	if config.OpenBrowser() {
		g.Go(func() error {
			if err := waitReady(ctx, url+"/healthz"); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: readiness probe failed, not opening browser: %v\n", err)
				return nil
			}
			openBrowser(url)
			return nil
		})
	}

	return g.Wait()
}
