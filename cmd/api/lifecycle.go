package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type httpServer interface {
	Shutdown(ctx context.Context) error
}

type auditWorkers interface {
	Wait()
}

// shutdown stops the HTTP server before the audit workers: requests still in
// flight during Shutdown publish events the workers must drain afterwards.
func shutdown(srv httpServer, stopAudit context.CancelFunc, audit auditWorkers, timeout time.Duration, log zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Info().Msg("shutting down http server")
	err := srv.Shutdown(ctx)

	stopAudit()
	audit.Wait()
	log.Info().Msg("audit workers drained")
	return err
}
