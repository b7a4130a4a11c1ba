//go:build !windows

package python

import (
	"context"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// processHandle owns a running child process. cmd.Wait is called exactly
// once, by the reaper goroutine started in startProcess, so waitProcess and
// stopProcess are safe to use concurrently.
type processHandle struct {
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
}

func startProcess(ctx context.Context, dir string, env []string, name string, args ...string) (*processHandle, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if env != nil {
		cmd.Env = append(os.Environ(), env...)
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	proc := &processHandle{cmd: cmd, done: make(chan struct{})}
	go func() {
		proc.waitErr = cmd.Wait()
		close(proc.done)
	}()
	return proc, nil
}

func waitProcess(proc *processHandle) error {
	if proc == nil {
		return nil
	}
	<-proc.done
	return proc.waitErr
}

func stopProcess(proc *processHandle) {
	if proc == nil || proc.cmd == nil || proc.cmd.Process == nil {
		return
	}

	pgid, err := syscall.Getpgid(proc.cmd.Process.Pid)
	if err == nil {
		_ = syscall.Kill(-pgid, syscall.SIGTERM)
	} else {
		_ = proc.cmd.Process.Signal(syscall.SIGTERM)
	}

	select {
	case <-proc.done:
		return
	case <-time.After(5 * time.Second):
		if pgid > 0 {
			_ = syscall.Kill(-pgid, syscall.SIGKILL)
		} else {
			_ = proc.cmd.Process.Kill()
		}
		<-proc.done
	}
}
