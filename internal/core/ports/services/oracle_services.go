package services

import "context"

// MoneyOracle is the external vision-analysis service that judges whether an
// image shows genuine currency of the claimed nominal. It returns the raw
// response text, which is expected (but never trusted) to contain a single
// JSON verdict object. Any error means the oracle was unavailable for this
// attempt; the caller must not mutate the ledger in that case.
type MoneyOracle interface {
	AnalyzeDeposit(ctx context.Context, nominal int64, image []byte) (string, error)
}
