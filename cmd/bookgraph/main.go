package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hanpama/bookgraph/internal/config"
	"github.com/hanpama/bookgraph/internal/eventbus"
	"github.com/hanpama/bookgraph/internal/executor"
	"github.com/hanpama/bookgraph/internal/graph"
	"github.com/hanpama/bookgraph/internal/introspection"
	"github.com/hanpama/bookgraph/internal/language"
	"github.com/hanpama/bookgraph/internal/localrt"
	"github.com/hanpama/bookgraph/internal/logger"
	"github.com/hanpama/bookgraph/internal/otel"
	"github.com/hanpama/bookgraph/internal/schema"
	"github.com/hanpama/bookgraph/internal/server"
	"github.com/hanpama/bookgraph/internal/store"
)

const rootUsage = `bookgraph: GraphQL service over an in-memory author/book store

USAGE:
  bookgraph <command> [flags]

COMMANDS:
  serve            Run the HTTP GraphQL server
  print-schema     Print the schema as SDL
  query            Run one GraphQL document and print the JSON result
  help             Show help for any command

Settings are read from the environment and an optional .env file;
flags override them.
`

const serveUsage = `serve FLAGS:
  -addr <addr>              HTTP listen address (env BOOKGRAPH_ADDR, default :4000)
  -timeout <duration>       Per-request timeout (env BOOKGRAPH_TIMEOUT, default 10s)
  -pretty                   Pretty-print JSON responses (env BOOKGRAPH_PRETTY)
  -graphiql <bool>          Serve GraphiQL to browsers (env BOOKGRAPH_GRAPHIQL, default true)
  -introspection <bool>     Answer __schema and __type (env BOOKGRAPH_INTROSPECTION, default true)
  -max-body-bytes <n>       Request body limit (env BOOKGRAPH_MAX_BODY_BYTES)
  -cors <origin>            Allowed CORS origin. Repeatable (env BOOKGRAPH_CORS_ORIGINS)
  -seed <bool>              Preload the sample authors and books (env BOOKGRAPH_SEED, default true)
  -strict                   Reject addBook with an unknown authorId (env BOOKGRAPH_STRICT_AUTHOR_REFS)
  -otel.endpoint <addr>     OTLP collector endpoint (env OTEL_ENDPOINT)
  -otel.service <name>      OpenTelemetry service name (env OTEL_SERVICE_NAME)
`

const printSchemaUsage = `print-schema FLAGS:
  -out <file>   Write SDL to file (default: stdout)
`

const queryUsage = `query [FLAGS] [document]
  Reads the document from the argument, or from stdin when absent or "-".
  -variables <json>   Variables object
  -operation <name>   Operation to run when the document has several
  -seed <bool>        Preload the sample authors and books (default true)
  -strict             Reject addBook with an unknown authorId
  -pretty             Indent the output
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "bookgraph:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, rootUsage)
		return errors.New("missing command")
	}

	cmd := args[0]
	cmdArgs := args[1:]
	switch cmd {
	case "serve":
		return cmdServe(ctx, cmdArgs, stderr)
	case "print-schema":
		return cmdPrintSchema(cmdArgs, stdout, stderr)
	case "query":
		return cmdQuery(ctx, cmdArgs, stdin, stdout, stderr)
	case "help", "-h", "-help", "--help":
		return cmdHelp(cmdArgs, stdout)
	default:
		fmt.Fprint(stderr, rootUsage)
		return errors.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, rootUsage)
		return nil
	}
	switch args[0] {
	case "serve":
		fmt.Fprint(stdout, serveUsage)
	case "print-schema":
		fmt.Fprint(stdout, printSchemaUsage)
	case "query":
		fmt.Fprint(stdout, queryUsage)
	default:
		return errors.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return strings.Join(*s, ",") }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func newStore(cfg *config.StoreConfig) *store.Store {
	var opts []store.Option
	if cfg.StrictAuthorRefs {
		opts = append(opts, store.WithStrictAuthorRefs())
	}
	if cfg.Seed {
		return store.NewSeeded(opts...)
	}
	return store.New(opts...)
}

// newHandler wires store, schema, runtime and HTTP handler from cfg.
func newHandler(cfg *config.Config, log *zap.Logger) (http.Handler, error) {
	st := newStore(cfg.Store)
	sch, err := graph.NewSchema(st)
	if err != nil {
		return nil, errors.Wrap(err, "build schema")
	}
	rt := localrt.NewRuntime(sch, localrt.WithLogger(log))

	sopts := []server.Option{
		server.WithTimeout(cfg.Server.Timeout),
		server.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
		server.WithGraphiQL(cfg.Server.GraphiQL),
		server.WithIntrospection(cfg.Server.Introspection),
		server.WithLogger(log),
	}
	if cfg.Server.Pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if len(cfg.Server.CORSOrigins) > 0 {
		sopts = append(sopts, server.WithCORS(cfg.Server.CORSOrigins...))
	}
	h, err := server.New(rt, sch, sopts...)
	if err != nil {
		return nil, errors.Wrap(err, "server init")
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", h)
	mux.Handle("/", h)
	return mux, nil
}

func cmdServe(ctx context.Context, args []string, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var cors stringListFlag
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "HTTP listen address")
	fs.DurationVar(&cfg.Server.Timeout, "timeout", cfg.Server.Timeout, "Per-request timeout")
	fs.BoolVar(&cfg.Server.Pretty, "pretty", cfg.Server.Pretty, "Pretty-print JSON responses")
	fs.BoolVar(&cfg.Server.GraphiQL, "graphiql", cfg.Server.GraphiQL, "Serve GraphiQL")
	fs.BoolVar(&cfg.Server.Introspection, "introspection", cfg.Server.Introspection, "Enable introspection")
	fs.Int64Var(&cfg.Server.MaxBodyBytes, "max-body-bytes", cfg.Server.MaxBodyBytes, "Request body limit")
	fs.Var(&cors, "cors", "Allowed CORS origin")
	fs.BoolVar(&cfg.Store.Seed, "seed", cfg.Store.Seed, "Preload sample data")
	fs.BoolVar(&cfg.Store.StrictAuthorRefs, "strict", cfg.Store.StrictAuthorRefs, "Reject unknown authorId")
	fs.StringVar(&cfg.Tracing.Endpoint, "otel.endpoint", cfg.Tracing.Endpoint, "OTLP collector endpoint")
	fs.StringVar(&cfg.Tracing.ServiceName, "otel.service", cfg.Tracing.ServiceName, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(stderr, serveUsage)
		return err
	}
	if len(cors) > 0 {
		cfg.Server.CORSOrigins = cors
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	eventbus.Use(eventbus.New())
	defer logger.Attach(log)()
	shutdownTracing, err := otel.Setup(ctx, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	h, err := newHandler(cfg, log)
	if err != nil {
		return err
	}
	srv := &http.Server{Addr: cfg.Server.Addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("GraphQL server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

func cmdPrintSchema(args []string, stdout, stderr io.Writer) error {
	outFile := ""
	fs := flag.NewFlagSet("print-schema", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&outFile, "out", outFile, "Write SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(stderr, printSchemaUsage)
		return err
	}

	sch, err := graph.NewSchema(store.New())
	if err != nil {
		return errors.Wrap(err, "build schema")
	}
	sdl := schema.Render(sch)
	if outFile == "" {
		fmt.Fprint(stdout, sdl)
		return nil
	}
	return errors.Wrap(os.WriteFile(outFile, []byte(sdl), 0o644), "write schema")
}

func cmdQuery(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	vars := ""
	opName := ""
	pretty := false
	storeCfg := &config.StoreConfig{Seed: true}
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&vars, "variables", vars, "Variables object")
	fs.StringVar(&opName, "operation", opName, "Operation name")
	fs.BoolVar(&pretty, "pretty", pretty, "Indent the output")
	fs.BoolVar(&storeCfg.Seed, "seed", storeCfg.Seed, "Preload sample data")
	fs.BoolVar(&storeCfg.StrictAuthorRefs, "strict", storeCfg.StrictAuthorRefs, "Reject unknown authorId")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(stderr, queryUsage)
		return err
	}

	var source string
	if rest := fs.Args(); len(rest) > 0 && rest[0] != "-" {
		source = strings.Join(rest, " ")
	} else {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return errors.Wrap(err, "read document")
		}
		source = string(b)
	}

	variables := map[string]any{}
	if vars != "" {
		if err := json.Unmarshal([]byte(vars), &variables); err != nil {
			return errors.Wrap(err, "parse -variables")
		}
	}

	doc, err := language.ParseQuery(source)
	if err != nil {
		return errors.Wrap(err, "parse document")
	}

	sch, err := graph.NewSchema(newStore(storeCfg))
	if err != nil {
		return errors.Wrap(err, "build schema")
	}
	w := introspection.Wrap(localrt.NewRuntime(sch), sch)
	result := executor.NewExecutor(w.Runtime, w.Schema).ExecuteRequest(ctx, doc, opName, variables)

	enc := json.NewEncoder(stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return errors.Wrap(enc.Encode(result), "write result")
}
