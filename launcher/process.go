package launcher

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"sync"
)

// Process is a running emulator instance.
type Process interface {
	// Pid returns the OS process id.
	Pid() int
	// Alive reports whether the process is still running.
	Alive() bool
	// Kill terminates the process. Safe to call after exit.
	Kill() error
}

type osProcess struct {
	cmd *exec.Cmd

	mu     sync.Mutex
	exited bool
}

// launchEmulator starts the emulator binary with the given content path.
// The working directory is set to the binary's directory so the emulator
// finds its own config and data files.
func launchEmulator(exe, content string) (Process, error) {
	cmd := exec.Command(exe, content)
	cmd.Dir = filepath.Dir(exe)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start emulator: %w", err)
	}

	p := &osProcess{cmd: cmd}
	go func() {
		// Reap the child so it never lingers as a zombie.
		cmd.Wait()
		p.mu.Lock()
		p.exited = true
		p.mu.Unlock()
	}()
	return p, nil
}

func (p *osProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *osProcess) Alive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.exited
}

func (p *osProcess) Kill() error {
	p.mu.Lock()
	exited := p.exited
	p.mu.Unlock()
	if exited {
		return nil
	}
	return p.cmd.Process.Kill()
}
