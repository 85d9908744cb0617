package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/matchpoint/internal/feedsim"
	"github.com/okian/matchpoint/pkg/logger"
)

// Default configuration constants.
const (
	defaultAddr         = "localhost:9090"
	defaultMatches      = 40
	defaultLiveFraction = 0.5
)

func main() {
	var (
		addr         = flag.String("addr", defaultAddr, "Listen address for both provider endpoints")
		matches      = flag.Int("matches", defaultMatches, "Number of fixtures to generate")
		liveFraction = flag.Float64("live", defaultLiveFraction, "Fraction of fixtures that also appear in-play")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config := &feedsim.Config{
		Addr:         *addr,
		Matches:      *matches,
		LiveFraction: *liveFraction,
		Verbose:      *verbose,
	}

	if err := feedsim.Run(ctx, config); err != nil && err != http.ErrServerClosed {
		os.Stderr.WriteString("feed simulator failed: " + err.Error() + "\n")
	}
}
