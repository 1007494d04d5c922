package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mycelian/mycelian-fetch/client"
	"github.com/mycelian/mycelian-fetch/internal/config"
	"github.com/mycelian/mycelian-fetch/internal/logger"
)

const defaultCommandTimeout = 60 * time.Second

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

type rootFlags struct {
	baseURL string
	debug   bool
	timeout time.Duration
	headers []string
	data    string

	cfg *config.Config
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	f := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "fetchctl",
		Short:         "Fetch JSON resources relative to a configured base URL",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.Logger = logger.Console(cmd.ErrOrStderr())

			cfg, err := config.New()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("base-url") {
				cfg.BaseURL = f.baseURL
			}
			if cmd.Flags().Changed("timeout") {
				cfg.HTTPTimeout = f.timeout
			}
			cfg.Debug = cfg.Debug || f.debug
			f.cfg = cfg

			// FETCH_DEBUG and --debug both need debug level, or the HTTP dumps are dropped.
			if cfg.Debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&f.baseURL, "base-url", "", "Base URL every path is resolved against (overrides FETCH_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&f.debug, "debug", "d", false, "Enable verbose debug output, including HTTP dumps")
	rootCmd.PersistentFlags().DurationVar(&f.timeout, "timeout", 0, "HTTP timeout (overrides FETCH_HTTP_TIMEOUT)")
	rootCmd.PersistentFlags().StringArrayVarP(&f.headers, "header", "H", nil, "Request header as 'Name: value' (repeatable)")

	rootCmd.AddCommand(newMethodCmd(f, http.MethodGet, false))
	rootCmd.AddCommand(newMethodCmd(f, http.MethodDelete, false))
	rootCmd.AddCommand(newMethodCmd(f, http.MethodPost, true))
	rootCmd.AddCommand(newMethodCmd(f, http.MethodPut, true))
	rootCmd.AddCommand(newMethodCmd(f, http.MethodPatch, true))

	return rootCmd
}

func newMethodCmd(f *rootFlags, method string, withBody bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   strings.ToLower(method) + " <path>",
		Short: fmt.Sprintf("Send a %s request and print the JSON response", method),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildRequestOptions(method, f.headers, f.data, withBody)
			if err != nil {
				return err
			}

			c, err := f.cfg.NewClient()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), defaultCommandTimeout)
			defer cancel()

			log.Debug().
				Str("method", method).
				Str("path", args[0]).
				Str("base_url", c.BaseURL()).
				Msg("fetching")

			start := time.Now()
			payload, err := c.Fetch(ctx, args[0], opts)
			if err != nil {
				var fe *client.FetchError
				if errors.As(err, &fe) {
					log.Debug().Int("status", fe.Status).Bool("retryable", fe.Retryable()).Msg("fetch failed")
				}
				return err
			}
			log.Debug().Dur("elapsed", time.Since(start)).Msg("fetch succeeded")

			return printJSON(cmd, payload)
		},
	}
	if withBody {
		cmd.Flags().StringVar(&f.data, "data", "", "Request body; sent with Content-Type: application/json unless a header overrides it")
	}
	return cmd
}

// buildRequestOptions turns CLI flags into client.RequestOptions.
func buildRequestOptions(method string, headers []string, data string, withBody bool) (*client.RequestOptions, error) {
	opts := &client.RequestOptions{Method: method, Headers: map[string]string{}}
	for _, h := range headers {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q: expected 'Name: value'", h)
		}
		opts.Headers[name] = strings.TrimSpace(value)
	}
	if withBody && data != "" {
		if !json.Valid([]byte(data)) {
			log.Warn().Msg("request body is not valid JSON; sending as is")
		}
		opts.Body = []byte(data)
		if !hasHeader(opts.Headers, "Content-Type") {
			opts.Headers["Content-Type"] = "application/json"
		}
	}
	return opts, nil
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
