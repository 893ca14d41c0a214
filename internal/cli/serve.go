package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/lociview/lociview/pkg/config"
	"github.com/lociview/lociview/pkg/errors"
	"github.com/lociview/lociview/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr    string
	joint   bool
	noCache bool
}

// serveCommand creates the serve command: a small HTTP browser that
// re-plots a fixed layout for whatever range the query asks for.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve [layout.toml]",
		Short: "Serve plots of a layout over HTTP",
		Long: `Serve loads a TOML layout once and answers GET /view requests by
plotting the requested genome range:

  GET /view?range=chr9:4000000-6000000
  GET /view?range=chr1:0-1000000&range2=chr2:0-1000000&format=png

Artifacts are cached, so repeated views of the same range are served
without replotting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.joint, "joint", false, "serve the layout's joint view")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, layoutPath string, opts *serveOpts) error {
	// Fail fast on broken layouts instead of per-request.
	cfg, err := config.Load(layoutPath)
	if err != nil {
		return err
	}

	runner := c.newRunner(opts.noCache)
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           c.newRouter(runner, cfg, opts.joint),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	printInfo("Serving %s on %s", layoutPath, opts.addr)
	printNextStep("Try", fmt.Sprintf("curl 'http://localhost%s/view?range=chr1:0-1000000'", opts.addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// newRouter builds the HTTP routes for the plot browser.
func (c *CLI) newRouter(runner *pipeline.Runner, cfg *config.Config, joint bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/view", c.viewHandler(runner, cfg, joint))

	return r
}

var contentTypes = map[string]string{
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
}

// viewHandler plots the configured layout for the query's range.
func (c *CLI) viewHandler(runner *pipeline.Runner, cfg *config.Config, joint bool) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		grange := req.URL.Query().Get("range")
		if grange == "" {
			http.Error(w, "missing range parameter", http.StatusBadRequest)
			return
		}
		format := req.URL.Query().Get("format")
		if format == "" {
			format = pipeline.FormatSVG
		}
		if err := pipeline.ValidateFormat(format); err != nil {
			http.Error(w, errors.UserMessage(err), http.StatusBadRequest)
			return
		}

		result, err := runner.Execute(req.Context(), pipeline.Options{
			Config:  cfg,
			Range1:  grange,
			Range2:  req.URL.Query().Get("range2"),
			Joint:   joint,
			Formats: []string{format},
		})
		if err != nil {
			status := http.StatusInternalServerError
			switch errors.GetCode(err) {
			case errors.ErrCodeInvalidRange, errors.ErrCodeInvalidConfig:
				status = http.StatusBadRequest
			}
			http.Error(w, errors.UserMessage(err), status)
			return
		}

		w.Header().Set("Content-Type", contentTypes[format])
		_, _ = w.Write(result.Artifacts[format])
	}
}
