package utils

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type fakeInserter struct {
	err   error
	calls atomic.Int32
}

func (f *fakeInserter) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &mongo.InsertOneResult{}, nil
}

func TestInsertOneAsyncSuccess(t *testing.T) {
	coll := &fakeInserter{}
	select {
	case err := <-InsertOneAsync("analyses", coll, map[string]string{"plant_type": "Tomato"}):
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("insert did not complete")
	}
	if got := coll.calls.Load(); got != 1 {
		t.Errorf("insert called %d times, want 1", got)
	}
}

func TestInsertOneAsyncDispatchesFailuresToObservers(t *testing.T) {
	var mu sync.Mutex
	var gotCollection string
	var gotErr error
	OnWriteError(func(collection string, err error) {
		mu.Lock()
		defer mu.Unlock()
		gotCollection = collection
		gotErr = err
	})

	writeErr := fmt.Errorf("permission denied")
	coll := &fakeInserter{err: writeErr}

	select {
	case err := <-InsertOneAsync("analyses", coll, map[string]string{}):
		if err == nil {
			t.Fatal("expected the write error on the result channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("insert did not complete")
	}

	mu.Lock()
	defer mu.Unlock()
	if gotCollection != "analyses" {
		t.Errorf("observer collection = %q, want analyses", gotCollection)
	}
	if gotErr != writeErr {
		t.Errorf("observer error = %v, want %v", gotErr, writeErr)
	}
}

// A caller that never reads the result channel must not block the writer.
func TestInsertOneAsyncFireAndForget(t *testing.T) {
	coll := &fakeInserter{}
	InsertOneAsync("analyses", coll, map[string]string{})

	deadline := time.Now().Add(2 * time.Second)
	for coll.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("detached insert never ran")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
