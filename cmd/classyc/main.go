package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/wippyai/classy/async"
	"github.com/wippyai/classy/examples/vehicles"
	"github.com/wippyai/classy/object"
	"github.com/wippyai/classy/wasmimpl"
)

const usage = `Usage: classyc <command> [flags]

Commands:
  demo      run the vehicles sample program
  layout    print the composed layout of the sample classes
  inspect   browse the sample classes interactively

Run "classyc <command> --help" for command flags.
`

// options are the flags shared by every command.
type options struct {
	verbose     bool
	maxDepth    int
	maxThreads  int64
	maxObjects  int
	noColor     bool
	count       int
	metricsAddr string
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Log runtime lifecycle events to stderr.")
	fs.IntVar(&o.maxDepth, "max-depth", 9, "Longest ancestor chain accepted, root included.")
	fs.Int64Var(&o.maxThreads, "max-threads", 0, "Concurrent async bodies allowed, 0 for unbounded.")
	fs.IntVar(&o.maxObjects, "max-objects", 0, "Live engine-allocated objects allowed, 0 for unbounded.")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable styled output.")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	opts := &options{}
	fs := pflag.NewFlagSet("classyc "+cmd, pflag.ContinueOnError)
	opts.addFlags(fs)
	switch cmd {
	case "demo":
		fs.IntVar(&opts.count, "count", vehicles.DefaultCount, "Objects created and destroyed per placement in the bulk test.")
		fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address and wait for a signal after the demo.")
	case "layout", "inspect":
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(1)
	}
	if err := fs.Parse(os.Args[2:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cmd, opts); err != nil {
		fmt.Fprintln(os.Stderr, newStyles(opts.noColor).err.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, opts *options) error {
	logger := zap.NewNop()
	if opts.verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer logger.Sync()
		async.SetLogger(logger.Named("async"))
		wasmimpl.SetLogger(logger.Named("wasm"))
	}

	cfg := object.DefaultConfig()
	cfg.Logger = logger.Named("object")
	cfg.MaxDepth = opts.maxDepth
	cfg.MaxThreads = opts.maxThreads
	cfg.MaxObjects = opts.maxObjects

	var registry *prometheus.Registry
	if opts.metricsAddr != "" {
		registry = prometheus.NewRegistry()
		cfg.Registerer = registry
	}

	rt, err := object.NewRuntime(cfg)
	if err != nil {
		return fmt.Errorf("create runtime: %w", err)
	}
	defer rt.Close(context.Background())

	st := newStyles(opts.noColor)
	switch cmd {
	case "demo":
		return runDemo(ctx, os.Stdout, rt, st, opts, registry)
	case "layout":
		cs, err := vehicles.Define(rt, nil)
		if err != nil {
			return err
		}
		for _, c := range []*object.Class{cs.Vehicle, cs.Car, cs.Elephant} {
			fmt.Println(renderLayout(st, c))
		}
		return nil
	case "inspect":
		cs, err := vehicles.Define(rt, nil)
		if err != nil {
			return err
		}
		return runInspect([]*object.Class{cs.Vehicle, cs.Car, cs.Elephant}, st)
	}
	return nil
}

func runDemo(ctx context.Context, out io.Writer, rt *object.Runtime, st styles, opts *options, registry *prometheus.Registry) error {
	var server *http.Server
	if registry != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		ln, err := net.Listen("tcp", opts.metricsAddr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", opts.metricsAddr, err)
		}
		server = &http.Server{Handler: mux}
		go server.Serve(ln)
		defer server.Close()
	}

	_, err := vehicles.Demo(ctx, rt, vehicles.Options{
		Out:     out,
		Heading: st.section,
		Count:   opts.count,
	})
	if err != nil {
		return err
	}

	if server != nil {
		fmt.Fprintln(out, st.help.Render("metrics on http://"+opts.metricsAddr+"/metrics, interrupt to exit"))
		<-ctx.Done()
	}
	return nil
}
