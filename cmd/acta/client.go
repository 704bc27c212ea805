package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/megbroc7/acta-ai-sub002/internal/auth"
	"github.com/megbroc7/acta-ai-sub002/internal/config"
	"github.com/megbroc7/acta-ai-sub002/internal/pipeline"
	"github.com/megbroc7/acta-ai-sub002/internal/transport"
)

const defaultAPIURL = "http://localhost:8000"

var (
	clientAPIURL    string
	clientTokenPath string
	clientConfig    string
	clientTimeout   int
	clientStrict    bool
	clientVerbose   bool
)

// addClientFlags registers the connection flags shared by every command that
// talks to the backend.
func addClientFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&clientAPIURL, "api-url", "", "Base URL of the generation API (or ACTA_API_URL)")
	cmd.Flags().StringVar(&clientTokenPath, "token-file", "", "Path to the bearer token file (or ACTA_TOKEN)")
	cmd.Flags().StringVar(&clientConfig, "config", "", "Path to a JSON config file")
	cmd.Flags().IntVar(&clientTimeout, "timeout", 0, "Timeout in seconds for non-streamed requests")
	cmd.Flags().BoolVar(&clientStrict, "strict", false, "Schema-validate stream payloads")
	cmd.Flags().BoolVarP(&clientVerbose, "verbose", "v", false, "Print detailed debug information")
}

// loadClientConfig merges flag values over the optional config file.
func loadClientConfig() (*config.Config, error) {
	cfg := &config.Config{
		APIURL:         clientAPIURL,
		TokenPath:      clientTokenPath,
		TimeoutSeconds: clientTimeout,
		Strict:         clientStrict,
		Verbose:        clientVerbose,
	}

	if clientConfig != "" {
		fileCfg, err := config.LoadConfig(clientConfig)
		if err != nil {
			return nil, err
		}
		merged := cfg.MergeWithDefaults(*fileCfg)
		merged.Strict = cfg.Strict || fileCfg.Strict
		merged.Verbose = cfg.Verbose || fileCfg.Verbose
		cfg = &merged
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds the transport client from the merged configuration.
func newClient(cfg *config.Config) (*transport.Client, error) {
	apiURL := cfg.ResolveAPIURL()
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	tokens := auth.NewStore(cfg.TokenPath)
	if cfg.Verbose {
		if exp, ok := tokens.ExpiresAt(); ok && exp.Before(time.Now()) {
			log.Printf("[AUTH] stored token expired at %s; requests will go out with a dead credential", exp.Format(time.RFC3339))
		}
	}

	client, err := transport.NewClient(transport.Config{
		BaseURL: apiURL,
		Tokens:  tokens,
		Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

// newSession builds a pipeline session over a fresh transport client.
func newSession(cfg *config.Config) (*pipeline.Session, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	opts := []pipeline.Option{}
	if cfg.Strict {
		opts = append(opts, pipeline.WithStrictFrames())
	}
	if cfg.Verbose {
		opts = append(opts, pipeline.WithLogf(log.Printf))
	}
	return pipeline.NewSession(client, opts...), nil
}
