// Package events carries launch progress and game lifecycle notifications
// to whatever presents them.
package events

import "sync"

type Progress struct {
	Stage    string  `json:"stage"`
	Progress float64 `json:"progress"`
	Current  int64   `json:"current"`
	Total    int64   `json:"total"`
}

type Crash struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

type Exit struct {
	Code    int  `json:"code"`
	Success bool `json:"success"`
}

// Emitter receives every event of a launch. Implementations must be safe
// for concurrent use: asset workers and the output reader call in from
// their own goroutines.
type Emitter interface {
	Progress(Progress)
	Output(line string)
	Ready()
	Crashed(Crash)
	Exited(Exit)
}

type Nop struct{}

func (Nop) Progress(Progress) {}
func (Nop) Output(string)     {}
func (Nop) Ready()            {}
func (Nop) Crashed(Crash)     {}
func (Nop) Exited(Exit)       {}

type Kind int

const (
	KindProgress Kind = iota
	KindOutput
	KindReady
	KindCrashed
	KindExited
)

type Event struct {
	Kind     Kind
	Progress Progress
	Line     string
	Crash    Crash
	Exit     Exit
}

// Recorder keeps every event it receives, in arrival order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *Recorder) Progress(p Progress) { r.add(Event{Kind: KindProgress, Progress: p}) }
func (r *Recorder) Output(line string)  { r.add(Event{Kind: KindOutput, Line: line}) }
func (r *Recorder) Ready()              { r.add(Event{Kind: KindReady}) }
func (r *Recorder) Crashed(c Crash)     { r.add(Event{Kind: KindCrashed, Crash: c}) }
func (r *Recorder) Exited(e Exit)       { r.add(Event{Kind: KindExited, Exit: e}) }

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *Recorder) OfKind(kind Kind) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
