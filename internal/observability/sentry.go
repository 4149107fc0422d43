// Package observability is the dashboard's Sentry hook. Everything
// degrades to a no-op when no DSN is configured, so local runs and
// tests need no setup.
package observability

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry returns a flush func for main to defer. The release tag
// defaults to the app name so events group sensibly even before a
// build pipeline stamps a version.
func InitSentry(dsn, env, release string) (func(), error) {
	noop := func() {}
	if dsn == "" {
		return noop, nil
	}
	if release == "" {
		release = "tutorboard"
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      env,
		Release:          release,
		AttachStacktrace: true,
	}); err != nil {
		return noop, fmt.Errorf("sentry init: %w", err)
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureErr reports err upstream; nil is ignored so failure paths can
// call it unconditionally.
func CaptureErr(err error) {
	if err == nil {
		return
	}
	sentry.CaptureException(err)
}
