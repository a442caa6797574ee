// Package process spawns the game and watches it until it exits.
package process

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/mrnavastar/mclaunch/events"
	"github.com/mrnavastar/mclaunch/util/logger"
)

type State int

const (
	Building State = iota
	Spawned
	Running
	Exited
	SpawnFailed
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case Spawned:
		return "spawned"
	case Running:
		return "running"
	case Exited:
		return "exited"
	case SpawnFailed:
		return "spawn failed"
	default:
		return "unknown"
	}
}

// ReadyMarkers are output fragments that mean the game window is up.
var ReadyMarkers = []string{"[Render thread/INFO]:", "Sound engine started"}

const maxLineSize = 1024 * 1024

type Supervisor struct {
	// GameDir is the working directory and holds crash-reports/.
	GameDir     string
	Emitter     events.Emitter
	CrashWindow time.Duration
	Now         func() time.Time
}

// Process is a spawned game being monitored.
type Process struct {
	cmd  *exec.Cmd
	done chan struct{}

	mu    sync.Mutex
	state State
	exit  events.Exit
}

func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

func (p *Process) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Process) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// Wait blocks until the game has exited and every event has been emitted.
func (p *Process) Wait() events.Exit {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exit
}

// Start spawns java with args and returns once the process runs. Output,
// readiness, crashes and the exit are reported to the emitter from a
// background goroutine.
func (s *Supervisor) Start(java string, args []string) (*Process, error) {
	p := &Process{done: make(chan struct{}), state: Building}

	p.cmd = exec.Command(java, args...)
	p.cmd.Dir = s.GameDir

	reader, writer, err := os.Pipe()
	if err != nil {
		p.setState(SpawnFailed)
		return nil, fmt.Errorf("creating output pipe: %w", err)
	}
	p.cmd.Stdout = writer
	p.cmd.Stderr = writer

	if err := p.cmd.Start(); err != nil {
		reader.Close()
		writer.Close()
		p.setState(SpawnFailed)
		return nil, fmt.Errorf("spawning game process: %w", err)
	}
	writer.Close()

	p.setState(Spawned)
	logger.Logger().Infof("game started with pid %d", p.cmd.Process.Pid)

	go s.monitor(p, reader)
	return p, nil
}

func (s *Supervisor) monitor(p *Process, output *os.File) {
	defer close(p.done)
	em := s.emitter()
	p.setState(Running)

	ready := false
	reader := bufio.NewReaderSize(output, 64*1024)
	for {
		line, err := readLine(reader)
		if err != nil {
			if err != io.EOF {
				logger.Logger().Warnf("stopped reading game output: %v", err)
				_, _ = io.Copy(io.Discard, output)
			}
			break
		}
		em.Output(line)
		logger.Logger().Debugf("[game] %s", line)

		if !ready && isReadyLine(line) {
			ready = true
			em.Ready()
			events.Report(em, events.StageReady, "", 100, 100)
		}
	}

	err := p.cmd.Wait()
	output.Close()

	exit := events.Exit{Code: p.cmd.ProcessState.ExitCode(), Success: err == nil}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		logger.Logger().Warnf("waiting for game process: %v", err)
	}
	logger.Logger().Infof("game exited with code %d", exit.Code)

	if !exit.Success {
		if crash, found := FindCrashReport(s.GameDir, s.crashWindow(), s.now()); found {
			em.Output("Game crashed! Crash report saved to: " + crash.Path)
			em.Crashed(crash)
		}
	}

	p.mu.Lock()
	p.exit = exit
	p.state = Exited
	p.mu.Unlock()
	em.Exited(exit)
}

// readLine returns the next line without its terminator. Lines longer than
// maxLineSize are cut and the rest of them is discarded.
func readLine(r *bufio.Reader) (string, error) {
	var line []byte
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if len(line) > 0 && err == io.EOF {
				return string(line), nil
			}
			return "", err
		}
		if room := maxLineSize - len(line); room > 0 {
			if len(chunk) > room {
				chunk = chunk[:room]
			}
			line = append(line, chunk...)
		}
		if !isPrefix {
			return string(line), nil
		}
	}
}

func isReadyLine(line string) bool {
	for _, marker := range ReadyMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

func (s *Supervisor) emitter() events.Emitter {
	if s.Emitter == nil {
		return events.Nop{}
	}
	return s.Emitter
}

func (s *Supervisor) crashWindow() time.Duration {
	if s.CrashWindow <= 0 {
		return DefaultCrashWindow
	}
	return s.CrashWindow
}

func (s *Supervisor) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
