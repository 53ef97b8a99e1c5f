package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/twapi/internal/config"
	"github.com/fivetwenty-io/twapi/internal/constants"
	"github.com/fivetwenty-io/twapi/internal/metrics"
	"github.com/fivetwenty-io/twapi/pkg/twapi"
	"github.com/fivetwenty-io/twapi/pkg/twclient"
)

// cliRuntime is the process-wide state shared by the commands.
type cliRuntime struct {
	mu            sync.Mutex
	logger        *slog.Logger
	observer      *metrics.Observer
	metricsServer *http.Server
}

var state = &cliRuntime{}

// LoadSettings resolves the settings map from the config file, environment
// and flags.
func LoadSettings() (map[string]string, error) {
	loader := config.NewLoader(viper.GetViper())

	settings, err := loader.Load(viper.GetString("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return settings, nil
}

// CreateClient creates an API client from the resolved settings.
func CreateClient() (twapi.Client, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, err
	}

	opts := []twclient.Option{
		twclient.WithUserAgent("twapi-cli/" + constants.CLIVersion),
		twclient.WithDebug(viper.GetBool("verbose")),
	}

	if state.logger != nil {
		opts = append(opts, twclient.WithLogger(twapi.NewSlogLogger(state.logger)))
	}

	if baseURL := viper.GetString("api_url"); baseURL != "" {
		opts = append(opts, twclient.WithAPIBaseURL(baseURL))
	}

	if uploadURL := viper.GetString("upload_url"); uploadURL != "" {
		opts = append(opts, twclient.WithUploadBaseURL(uploadURL))
	}

	observer, err := state.startMetrics(viper.GetString("metrics_addr"))
	if err != nil {
		return nil, err
	}

	if observer != nil {
		opts = append(opts, twclient.WithObserver(observer))
	}

	client, err := twclient.NewFromSettings(settings, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// startMetrics serves /metrics on addr once per process. An empty addr
// disables metrics.
func (r *cliRuntime) startMetrics(addr string) (*metrics.Observer, error) {
	if addr == "" {
		return nil, nil //nolint:nilnil // metrics are optional
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.observer != nil {
		return r.observer, nil
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	registry := prometheus.NewRegistry()
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(registry))

	server := &http.Server{Handler: mux, ReadHeaderTimeout: constants.ShortHTTPTimeout}

	go func() {
		serveErr := server.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) && r.logger != nil {
			r.logger.Error("metrics server failed", "error", serveErr)
		}
	}()

	r.observer = metrics.NewObserver(registry)
	r.metricsServer = server

	return r.observer, nil
}

// Shutdown stops the metrics server if one was started.
func Shutdown() error {
	state.mu.Lock()
	server := state.metricsServer
	state.metricsServer = nil
	state.observer = nil
	state.mu.Unlock()

	if server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.MetricsShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		return fmt.Errorf("failed to stop metrics server: %w", err)
	}

	return nil
}
