package main

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/devserve-go/devserve/core/config"
	"github.com/devserve-go/devserve/core/logger"
	"github.com/devserve-go/devserve/core/repl"
	"github.com/devserve-go/devserve/core/serve"
)

//go:embed resources
var resourcesFS embed.FS

var (
	flagDir          string
	flagPort         int
	flagEngine       string
	flagHandler      string
	flagNotFound     string
	flagResourceRoot string
	flagReload       bool
	flagWatchDirs    []string
	flagSSLPort      int
	flagCertFile     string
	flagKeyFile      string
	flagRepl         bool
	flagReplPort     int
	flagQR           bool
	flagVerbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "devserve",
	Short: "Development-time static content server",
	Long: `devserve serves a directory (or bundled resources) over HTTP for
development: directory listings, index.html resolution, pluggable backend
engines, and optional live reload for registered handlers.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&flagDir, "dir", "d", "", "directory to serve (default: bundled resources)")
	flags.IntVarP(&flagPort, "port", "p", 3000, "port to listen on")
	flags.StringVar(&flagEngine, "engine", "nethttp", "backend engine: nethttp or fasthttp")
	flags.StringVar(&flagHandler, "handler", "", "registered handler name overriding all serving chains")
	flags.StringVar(&flagNotFound, "not-found", "", "registered handler name for 404 responses")
	flags.StringVar(&flagResourceRoot, "resource-root", "", "sub-path within the bundled resources")
	flags.BoolVar(&flagReload, "reload", false, "enable live reload for the custom handler")
	flags.StringSliceVar(&flagWatchDirs, "watch", []string{"src"}, "directories watched for live reload")
	flags.IntVar(&flagSSLPort, "ssl-port", 8443, "TLS port (used when cert and key are given)")
	flags.StringVar(&flagCertFile, "cert", "", "TLS certificate file; with --key, disables plaintext HTTP")
	flags.StringVar(&flagKeyFile, "key", "", "TLS private key file")
	flags.BoolVar(&flagRepl, "repl", false, "start the local evaluation listener")
	flags.IntVar(&flagReplPort, "repl-port", 0, "evaluation listener port (0 picks one)")
	flags.BoolVar(&flagQR, "qr", false, "print a QR code of the serve URL for device testing")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	var cfg serve.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	applyFlags(cmd, &cfg)

	bundled, err := fs.Sub(resourcesFS, "resources")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handle, err := serve.Start(ctx, cfg,
		serve.WithResources(bundled),
		serve.WithLogger(log),
	)
	if err != nil {
		return err
	}

	var evalSrv *repl.Server
	if flagRepl {
		evalSrv = repl.New(repl.WithPort(flagReplPort), repl.WithLogger(log))
		if err := evalSrv.Start(); err != nil {
			_ = handle.Stop()
			return err
		}
	}

	scheme := "http"
	if cfg.CertFile != "" && cfg.KeyFile != "" {
		scheme = "https"
	}
	fmt.Printf("Serving on %s://localhost:%d/ (%s)\n", scheme, handle.Port, handle.Name)

	if flagQR {
		if err := printQR(scheme, handle.Port); err != nil {
			log.Warn("could not render QR code", logger.Error(err))
		}
	}

	// Block until a signal arrives, then shut everything down together.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return handle.Stop()
	})
	if evalSrv != nil {
		g.Go(func() error {
			<-gctx.Done()
			return evalSrv.Stop()
		})
	}
	return g.Wait()
}

// applyFlags lets explicit command-line flags override environment-derived
// configuration.
func applyFlags(cmd *cobra.Command, cfg *serve.Config) {
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Dir = flagDir
	}
	if flags.Changed("port") {
		cfg.Port = flagPort
	}
	if flags.Changed("engine") {
		cfg.Engine = flagEngine
	}
	if flags.Changed("handler") {
		cfg.Handler = flagHandler
	}
	if flags.Changed("not-found") {
		cfg.NotFound = flagNotFound
	}
	if flags.Changed("resource-root") {
		cfg.ResourceRoot = flagResourceRoot
	}
	if flags.Changed("reload") {
		cfg.Reload = flagReload
	}
	if flags.Changed("watch") {
		cfg.WatchDirs = flagWatchDirs
	}
	if flags.Changed("ssl-port") {
		cfg.SSLPort = flagSSLPort
	}
	if flags.Changed("cert") {
		cfg.CertFile = flagCertFile
	}
	if flags.Changed("key") {
		cfg.KeyFile = flagKeyFile
	}
}

// printQR renders a terminal QR code pointing a phone on the same network
// at the server.
func printQR(scheme string, port int) error {
	q, err := qrcode.New(fmt.Sprintf("%s://%s:%d/", scheme, lanHost(), port), qrcode.Medium)
	if err != nil {
		return err
	}
	fmt.Print(q.ToSmallString(false))
	return nil
}

// lanHost picks the first non-loopback IPv4 address so the QR code works
// from other devices; falls back to localhost.
func lanHost() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}
	for _, addr := range addrs {
		if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
			return ipnet.IP.String()
		}
	}
	return "127.0.0.1"
}
