package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"freelance_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// readWithRetry runs an idempotent read, retrying once on failure.
// Writes never go through here: retrying a write risks double
// materialization, so failed writes are surfaced to the caller instead.
func readWithRetry(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil {
		return nil
	}
	if ctx.Err() != nil || !isRetryableRead(err) {
		return err
	}
	return fn()
}

// isRetryableRead rules out request faults the caller made: a malformed
// request fails identically on replay, only transport and server-side
// failures are worth a second attempt.
func isRetryableRead(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorFault() != smithy.FaultClient
	}
	return true
}

func isConditionalCheckFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return errors.As(err, &cfe)
}

// wrapUnavailable tags store transport failures with the contract
// sentinel so the service layer can map them to a retryable error kind.
func wrapUnavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", interfaces.ErrLedgerUnavailable, err)
}
