package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mrnavastar/mclaunch/events"
	"github.com/schollz/progressbar/v3"
)

// barEmitter draws launch progress on the terminal until the game is ready.
type barEmitter struct {
	bar        *progressbar.ProgressBar
	showOutput bool
	done       bool
}

func newBarEmitter(showOutput bool) *barEmitter {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("launching"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	return &barEmitter{bar: bar, showOutput: showOutput}
}

func (b *barEmitter) Progress(p events.Progress) {
	if b.done {
		return
	}
	b.bar.Describe(p.Stage)
	_ = b.bar.Set(int(p.Progress))
}

func (b *barEmitter) Output(line string) {
	if !b.showOutput {
		return
	}
	if !b.done {
		_ = b.bar.Clear()
	}
	fmt.Println(line)
}

func (b *barEmitter) Ready() {
	b.finish()
	fmt.Println("Game started.")
}

func (b *barEmitter) Crashed(crash events.Crash) {
	b.finish()
	if !b.showOutput {
		fmt.Println("Game crashed! Crash report saved to: " + crash.Path)
	}
}

func (b *barEmitter) Exited(exit events.Exit) {
	b.finish()
	fmt.Printf("Game exited with code %d\n", exit.Code)
}

func (b *barEmitter) finish() {
	if b.done {
		return
	}
	b.done = true
	_ = b.bar.Finish()
}

func (b *barEmitter) abort() {
	if b.done {
		return
	}
	b.done = true
	_ = b.bar.Clear()
	fmt.Fprintln(os.Stderr)
}
