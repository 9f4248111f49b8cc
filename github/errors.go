package github

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fwojciec/repodoc"
	gh "github.com/google/go-github/v80/github"
)

// wrapError maps go-github errors onto application error codes.
func wrapError(err error, op string) error {
	if err == nil {
		return nil
	}

	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	var respErr *gh.ErrorResponse
	var appErr *repodoc.Error

	switch {
	case errors.As(err, &appErr):
		return err
	case errors.As(err, &rateErr):
		return repodoc.Wrapf(repodoc.ERATELIMIT, err, "%s: rate limit exceeded, resets at %s",
			op, rateErr.Rate.Reset.UTC().Format(time.RFC3339))
	case errors.As(err, &abuseErr):
		return repodoc.Wrapf(repodoc.ERATELIMIT, err, "%s: secondary rate limit exceeded", op)
	case errors.As(err, &respErr):
		return wrapStatus(err, op, respErr)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return repodoc.Wrapf(repodoc.ENETWORK, err, "%s: request aborted", op)
	default:
		return repodoc.Wrapf(repodoc.ENETWORK, err, "%s: %v", op, err)
	}
}

func wrapStatus(err error, op string, respErr *gh.ErrorResponse) error {
	status := 0
	if respErr.Response != nil {
		status = respErr.Response.StatusCode
	}
	switch status {
	case http.StatusUnauthorized:
		return repodoc.Wrapf(repodoc.EAUTH, err, "%s: bad or missing credentials", op)
	case http.StatusForbidden:
		return repodoc.Wrapf(repodoc.EAUTH, err, "%s: access denied: %s", op, respErr.Message)
	case http.StatusNotFound:
		return repodoc.Wrapf(repodoc.ENOTFOUND, err, "%s: not found", op)
	case http.StatusTooManyRequests:
		return repodoc.Wrapf(repodoc.ERATELIMIT, err, "%s: too many requests", op)
	default:
		return repodoc.Wrapf(repodoc.ENETWORK, err, "%s: unexpected status %d: %s", op, status, respErr.Message)
	}
}
