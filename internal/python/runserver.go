package python

import (
	"context"
	"fmt"
	"sync"

	"github.com/djboot-dev/djboot/internal/errors"
)

// Runserver manages the long-running Django development server process.
type Runserver struct {
	dir  string
	mu   sync.Mutex
	proc *processHandle
	gen  int
}

// NewRunserver creates a manager for the dev server in dir.
func NewRunserver(dir string) *Runserver {
	return &Runserver{dir: dir}
}

// Start launches `poetry run python manage.py runserver` bound to the given
// host and port. A previous instance is stopped first.
func (r *Runserver) Start(ctx context.Context, host string, port int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.proc != nil {
		stopProcess(r.proc)
		r.proc = nil
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	proc, err := startProcess(ctx, r.dir, nil,
		"poetry", "run", "python", "manage.py", "runserver", addr)
	if err != nil {
		return errors.New("E074").WithPath(r.dir).Wrap(err)
	}
	r.proc = proc
	r.gen++
	return nil
}

// Generation counts successful Starts. A caller waiting on the process can
// compare generations to tell a restart from the server exiting on its own.
func (r *Runserver) Generation() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// Wait blocks until the server process exits and returns its error.
func (r *Runserver) Wait() error {
	r.mu.Lock()
	proc := r.proc
	r.mu.Unlock()

	if proc == nil {
		return nil
	}
	if err := waitProcess(proc); err != nil {
		return errors.New("E074").WithPath(r.dir).Wrap(err)
	}
	return nil
}

// Stop terminates the server process group.
func (r *Runserver) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.proc != nil {
		stopProcess(r.proc)
		r.proc = nil
	}
}

// Running reports whether a server process is being managed.
func (r *Runserver) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.proc != nil
}
