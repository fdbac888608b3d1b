package refresher

import (
	"context"
)

// Refresher defines the interface for refresher implementations
// Refreshers are long-running background tasks that keep durable data warm
//
//go:generate mockgen -source=refresher.go -destination=../mocks/refresher.go -package=mocks -mock_names=Refresher=MockRefresher
type Refresher interface {
	// Start begins the refresher's main loop
	// This is a blocking call that runs until the context is canceled
	Start(ctx context.Context) error

	// Stop gracefully stops the refresher
	// This should wait for any in-progress work to complete
	Stop(ctx context.Context) error

	// Name returns the refresher's name for logging and identification
	Name() string
}
