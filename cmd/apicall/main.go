// apicall sends one request to a web API and prints the decoded response.
//
// Settings come from apicall.yaml (or --config), an optional .env file and
// APICALL_* environment variables; flags override them.
//
//	apicall --root-url https://api.example.com/v1 --shape json /users/7
//	apicall -X POST --as json -d '{"name":"ada"}' --bearer $TOKEN /users
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/apikit/apiclient"
	"github.com/kbukum/apikit/auth"
	"github.com/kbukum/apikit/component"
	"github.com/kbukum/apikit/config"
	"github.com/kbukum/apikit/logger"
	"github.com/kbukum/apikit/observability"
	"github.com/kbukum/apikit/version"
)

type appConfig struct {
	config.BaseConfig `mapstructure:",squash"`
	Client            apiclient.Config     `mapstructure:"client"`
	Observability     observability.Config `mapstructure:"observability"`
	Auth              auth.Config          `mapstructure:"auth"`
}

type options struct {
	configFile string
	envFile    string
	rootURL    string
	method     string
	content    string
	data       string
	dataFile   string
	as         string
	shape      string
	encoding   string
	headers    []string
	query      []string
	bearer     string
	timeout    time.Duration
	verbose    bool
	version    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("apicall", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&opts.configFile, "config", "c", "", "config file (default: apicall.yaml in ., ./config, $HOME/.apicall)")
	flagSet.StringVar(&opts.envFile, "env-file", "", ".env file to load before reading APICALL_* variables")
	flagSet.StringVar(&opts.rootURL, "root-url", "", "root URL prefixed to the request path")
	flagSet.StringVarP(&opts.method, "method", "X", "GET", "request method: GET, POST, PUT or DELETE")
	flagSet.StringVar(&opts.content, "content", "", "request content kind: auto, json, urlencoded or xml")
	flagSet.StringVarP(&opts.data, "data", "d", "", "request body")
	flagSet.StringVar(&opts.dataFile, "data-file", "", "read the request body from a file")
	flagSet.StringVar(&opts.as, "as", "text", "how to treat the body: text, bytes, json, form or xml")
	flagSet.StringVar(&opts.shape, "shape", "text", "response shape: bytes, text, json, json_object, json_array or xml")
	flagSet.StringVar(&opts.encoding, "encoding", "", "charset for text bodies (default utf-8)")
	flagSet.StringArrayVarP(&opts.headers, "header", "H", nil, "extra header as 'Name: value' (repeatable)")
	flagSet.StringArrayVarP(&opts.query, "query", "q", nil, "query parameter as key=value (repeatable)")
	flagSet.StringVar(&opts.bearer, "bearer", "", "bearer token, overrides configured auth")
	flagSet.DurationVar(&opts.timeout, "timeout", 0, "per-call timeout")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log calls to stderr")
	flagSet.BoolVar(&opts.version, "version", false, "print the version and exit")

	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if opts.version {
		_, err := fmt.Fprintln(stdout, "apicall", version.Get())
		return err
	}
	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return fmt.Errorf("expected exactly one request path, got %d", flagSet.NArg())
	}
	req, shape, err := buildRequest(&opts, flagSet.Arg(0))
	if err != nil {
		return err
	}

	cfg, err := loadConfig(&opts)
	if err != nil {
		return err
	}
	logger.Init(cfg.Logging)
	log := logger.Get("apicall")

	telemetry := observability.NewComponent(cfg.Observability)
	clientOpts := []apiclient.Option{
		apiclient.WithLogger(logger.Get("apiclient")),
		apiclient.WithUserAgent(version.UserAgent("apicall")),
	}

	creds, err := cfg.Auth.Build()
	if err != nil {
		return err
	}
	if creds != nil {
		clientOpts = append(clientOpts, apiclient.WithCredentials(creds))
	}
	if cfg.Auth.Type == auth.TypeFormLogin {
		jar, err := auth.NewCookieJar()
		if err != nil {
			return err
		}
		clientOpts = append(clientOpts, apiclient.WithCookieJar(jar))
	}
	// Metrics are created in telemetry.Start, so resolve them lazily.
	clientOpts = append(clientOpts, func(c *apiclient.Client) {
		apiclient.WithMetrics(telemetry.Metrics())(c)
	})
	client := apiclient.NewComponent(cfg.Client, clientOpts...)

	registry := component.NewRegistry(logger.Get("component"))
	for _, c := range []component.Component{telemetry, client} {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := registry.StopAll(stopCtx); err != nil {
			log.Warn("shutdown", logger.MergeWithError(nil, err))
		}
	}()
	if err := registry.StartAll(ctx); err != nil {
		return err
	}
	for _, d := range registry.Describe() {
		log.Debug("component ready", logger.Fields("name", d.Name, "type", d.Type, "details", d.Details))
	}

	result, err := client.Client().Call(ctx, req, shape)
	if err != nil {
		log.Debug("call failed", logger.Fields(logger.FieldError, err.Error(), logger.FieldStatus, apiclient.StatusCode(err)))
		var apiErr *apiclient.Error
		if errors.As(err, &apiErr) && apiErr.Kind == apiclient.KindTransport && apiErr.Body != "" {
			fmt.Fprintln(stderr, apiErr.Body)
		}
		return err
	}
	return printResult(stdout, shape, result)
}

func loadConfig(opts *options) (*appConfig, error) {
	var loaderOpts []config.LoaderOption
	if opts.configFile != "" {
		loaderOpts = append(loaderOpts, config.WithConfigFile(opts.configFile))
	}
	if opts.envFile != "" {
		loaderOpts = append(loaderOpts, config.WithEnvFile(opts.envFile))
	}

	var cfg appConfig
	if err := config.LoadConfig("apicall", &cfg, loaderOpts...); err != nil {
		return nil, err
	}

	if cfg.Name == "" {
		cfg.Name = "apicall"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = logger.OutputStderr
	}
	if cfg.Logging.Level == "" && !opts.verbose {
		cfg.Logging.Level = "warn"
	}
	if opts.verbose {
		cfg.Logging.Level = "debug"
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if opts.rootURL != "" {
		cfg.Client.RootURL = opts.rootURL
	}
	if opts.timeout > 0 {
		cfg.Client.Timeout = opts.timeout
	}
	if opts.encoding != "" {
		cfg.Client.Encoding = opts.encoding
	}
	if opts.bearer != "" {
		cfg.Auth = auth.Config{Type: auth.TypeBearer, Token: opts.bearer}
	}
	if cfg.Client.Name == "" {
		cfg.Client.Name = cfg.Name
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.Name
	}
	if cfg.Observability.ServiceVersion == "" {
		cfg.Observability.ServiceVersion = cfg.Version
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = cfg.Environment
	}
	return &cfg, nil
}

func splitHeader(h string) (string, string, error) {
	name, value, ok := strings.Cut(h, ":")
	if !ok || strings.TrimSpace(name) == "" {
		return "", "", fmt.Errorf("header %q must look like 'Name: value'", h)
	}
	return strings.TrimSpace(name), strings.TrimSpace(value), nil
}
