package browser

import (
	"context"
	"testing"
	"time"
)

func TestBindCancelFollowsCaller(t *testing.T) {
	caller, cancelCaller := context.WithCancel(context.Background())
	defer cancelCaller()

	runCtx, cancel := bindCancel(context.Background(), caller, time.Minute)
	defer cancel()

	select {
	case <-runCtx.Done():
		t.Fatal("derived context canceled before the caller was")
	default:
	}

	cancelCaller()
	select {
	case <-runCtx.Done():
	case <-time.After(time.Second):
		t.Fatal("caller cancellation did not propagate to the derived context")
	}
}

func TestBindCancelHonorsTimeout(t *testing.T) {
	runCtx, cancel := bindCancel(context.Background(), context.Background(), 5*time.Millisecond)
	defer cancel()

	select {
	case <-runCtx.Done():
	case <-time.After(time.Second):
		t.Fatal("derived context did not expire with its timeout")
	}
	if runCtx.Err() != context.DeadlineExceeded {
		t.Fatalf("Err() = %v, want DeadlineExceeded", runCtx.Err())
	}
}

func TestBindCancelSessionCancellationWins(t *testing.T) {
	session, cancelSession := context.WithCancel(context.Background())
	runCtx, cancel := bindCancel(session, context.Background(), time.Minute)
	defer cancel()

	cancelSession()
	select {
	case <-runCtx.Done():
	case <-time.After(time.Second):
		t.Fatal("session cancellation did not propagate to the derived context")
	}
}
