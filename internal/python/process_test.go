//go:build !windows

package python

import (
	"context"
	"syscall"
	"testing"
	"time"
)

// A restarted server process must live as long as the context it was started
// with, not as long as the function that launched it.
func TestStartProcess_OutlivesStartingScope(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var proc *processHandle
	func() {
		p, err := startProcess(ctx, "", nil, "sleep", "30")
		if err != nil {
			t.Fatalf("startProcess: %v", err)
		}
		proc = p
	}()
	defer stopProcess(proc)

	time.Sleep(100 * time.Millisecond)
	if err := proc.cmd.Process.Signal(syscall.Signal(0)); err != nil {
		t.Fatalf("process died after the starting scope returned: %v", err)
	}
}

// Cancelling the start context terminates the process, which is why restarts
// must be started with the server's context rather than a handler-scoped one.
func TestStartProcess_CancelKillsProcess(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	proc, err := startProcess(ctx, "", nil, "sleep", "30")
	if err != nil {
		t.Fatalf("startProcess: %v", err)
	}

	cancel()

	select {
	case <-proc.done:
	case <-time.After(2 * time.Second):
		stopProcess(proc)
		t.Fatal("cancelling the start context did not terminate the process")
	}
}

// waitProcess and stopProcess share one underlying Wait, so a goroutine
// blocked in waitProcess must return once the process is stopped.
func TestWaitProcess_ConcurrentWithStop(t *testing.T) {
	proc, err := startProcess(context.Background(), "", nil, "sleep", "30")
	if err != nil {
		t.Fatalf("startProcess: %v", err)
	}

	waited := make(chan error, 1)
	go func() { waited <- waitProcess(proc) }()

	time.Sleep(50 * time.Millisecond)
	stopProcess(proc)

	select {
	case <-waited:
	case <-time.After(2 * time.Second):
		t.Fatal("waitProcess did not return after stopProcess")
	}
}

func TestWaitProcess_NilHandle(t *testing.T) {
	if err := waitProcess(nil); err != nil {
		t.Errorf("waitProcess(nil) = %v, want nil", err)
	}
}
