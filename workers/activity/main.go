package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.temporal.io/sdk/client"
	sdklog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"golang.org/x/sync/errgroup"

	"kyc-verification-workflow/activities"
	"kyc-verification-workflow/config"
	"kyc-verification-workflow/logger"
	"kyc-verification-workflow/metrics"
	"kyc-verification-workflow/shared"
	"kyc-verification-workflow/tracer"
)

func main() {
	cfg := config.FromEnv()
	slogger := logger.New()

	c, err := client.Dial(client.Options{
		HostPort: cfg.TemporalHostPort,
		Logger:   sdklog.NewStructuredLogger(slogger),
	})
	if err != nil {
		log.Fatalf("Unable to create Temporal client: %v", err)
	}
	defer c.Close()

	var tr tracer.Tracer = tracer.NewNoop()
	if cfg.OTELEnabled {
		tr = tracer.NewOTel()
	}

	// All activity methods share one dependency set. The KYC service is
	// rate-limited in production, so cap concurrent executions here rather
	// than letting the default (1000) loose on it.
	a := &activities.Activities{
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		BaseURL:    cfg.KYCServiceURL,
		Tracer:     tr,
		Metrics:    metrics.New(),
		Sender:     &activities.LogSender{Logger: slogger},
	}

	w := worker.New(c, shared.ActivityTaskQueue, worker.Options{
		MaxConcurrentActivityExecutionSize: 50,
	})
	w.RegisterActivity(a)

	metricsSrv := &http.Server{Addr: cfg.MetricsAddr, Handler: promhttp.Handler()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slogger.Info("starting activity worker",
			"task_queue", shared.ActivityTaskQueue,
			"kyc_service_url", cfg.KYCServiceURL,
		)
		return w.Run(worker.InterruptCh())
	})
	g.Go(func() error {
		slogger.Info("serving metrics", "addr", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		return metricsSrv.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Worker exited with error: %v", err)
	}
}
