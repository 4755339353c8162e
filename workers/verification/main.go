package main

import (
	"log"

	"go.temporal.io/sdk/client"
	sdklog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"

	"kyc-verification-workflow/config"
	"kyc-verification-workflow/logger"
	"kyc-verification-workflow/shared"
	"kyc-verification-workflow/workflows"
)

func main() {
	cfg := config.FromEnv()
	slogger := logger.New()

	// Connect to the Temporal server via gRPC. HostPort defaults to
	// localhost:7233; set TEMPORAL_HOST_PORT for anything else.
	c, err := client.Dial(client.Options{
		HostPort: cfg.TemporalHostPort,
		Logger:   sdklog.NewStructuredLogger(slogger),
	})
	if err != nil {
		log.Fatalf("Unable to create Temporal client: %v", err)
	}
	defer c.Close()

	// Workflow tasks are lightweight (no I/O), so default worker options
	// are fine here; the activity worker is where tuning matters.
	w := worker.New(c, shared.VerificationWorkflowTaskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.VerificationWorkflow)

	slogger.Info("starting verification workflow worker", "task_queue", shared.VerificationWorkflowTaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("Unable to start worker: %v", err)
	}
}
