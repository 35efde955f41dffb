package utils

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// oneInserter is the subset of *mongo.Collection used by InsertOneAsync.
type oneInserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// WriteErrorObserver receives document write failures that were detached from
// the request that caused them.
type WriteErrorObserver func(collection string, err error)

var (
	writeObserversMu sync.Mutex
	writeObservers   []WriteErrorObserver
)

// OnWriteError registers an observer for detached write failures. Observers
// run on the writing goroutine and must not block.
func OnWriteError(fn WriteErrorObserver) {
	writeObserversMu.Lock()
	defer writeObserversMu.Unlock()
	writeObservers = append(writeObservers, fn)
}

func notifyWriteError(collection string, err error) {
	writeObserversMu.Lock()
	observers := make([]WriteErrorObserver, len(writeObservers))
	copy(observers, writeObservers)
	writeObserversMu.Unlock()

	for _, fn := range observers {
		fn(collection, err)
	}
}

// InsertOneAsync performs a non-blocking insert. The returned channel is
// buffered so a caller that never reads it cannot leak the goroutine. On
// failure the error is also dispatched to the registered write-error
// observers, which lets callers treat the write as fire-and-forget while the
// failure still gets reported somewhere.
func InsertOneAsync(name string, coll oneInserter, document interface{}) <-chan error {
	result := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_, err := coll.InsertOne(ctx, document)
		if err != nil {
			notifyWriteError(name, err)
		}
		result <- err
	}()
	return result
}
