// Command spanpayload-echo serves the payload negotiation over HTTP. POST a body to
// /echo as application/octet-stream or application/json and it is sent back in the
// representation named by Accept.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/illuscio-dev/spanpayload-go/internal/config"
	"github.com/illuscio-dev/spanpayload-go/internal/observability"
	"github.com/illuscio-dev/spanpayload-go/payload"
	"github.com/illuscio-dev/spanpayload-go/spanerrors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/xerrors"
	"google.golang.org/protobuf/types/known/structpb"
)

const appName = "spanpayload-echo"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var configPath string
	var addr string

	flagSet := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	flagSet.StringVar(&addr, "addr", "", "listen address, overrides the config file")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	cfg, err := loadConfig(configPath, addr)
	if err != nil {
		return err
	}

	logger := observability.InitLogger(appName, cfg.LogLevel)

	handler, err := newHandler(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg, logger, handler)
}

func loadConfig(path string, addr string) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if addr != "" {
		cfg.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Echoes the request body in the representation the client prefers.
func echo(
	request *http.Request, body payload.Payload[*structpb.Struct],
) (payload.Payload[*structpb.Struct], error) {
	value, _ := body.Decompose()
	if len(value.GetFields()) == 0 {
		return payload.Payload[*structpb.Struct]{}, spanerrors.NothingToReturnError.New(
			"empty object", nil, nil,
		)
	}
	return payload.FromAcceptHeader(value, request.Header), nil
}

func newHandler(cfg config.Config, logger zerolog.Logger) (http.Handler, error) {
	negotiator, err := payload.NewNegotiator(
		payload.WithLogger(logger),
		payload.WithErrorHeaders(cfg.ErrorHeaders),
	)
	if err != nil {
		return nil, xerrors.Errorf("create negotiator: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/echo", methodPost(negotiator, payload.Handle[structpb.Struct](negotiator, echo)))

	return observability.RequestLogger(logger, mux), nil
}

func methodPost(negotiator *payload.Negotiator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPost {
			negotiator.WriteError(
				writer, spanerrors.InvalidMethodError.New("use POST", nil, nil),
			)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

func serve(
	ctx context.Context, cfg config.Config, logger zerolog.Logger, handler http.Handler,
) error {
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("listening")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			return xerrors.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return xerrors.Errorf("shutdown: %w", err)
	}
	return nil
}
