package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// exitForced is the status after a second interrupt while the prompt is open
const exitForced = 130

// interruptGuard asks for confirmation before an interrupt cancels the run
type interruptGuard struct {
	signals <-chan os.Signal
	out     io.Writer
	cancel  context.CancelFunc
	exit    func(int)
	// hold pauses other terminal output while the prompt is shown
	hold func() (release func())

	in       *bufio.Reader
	lines    chan string
	readOnce sync.Once
	// quit releases the reader once nobody will prompt again
	quit     chan struct{}
	quitOnce sync.Once
}

func newInterruptGuard(signals <-chan os.Signal, in io.Reader, out io.Writer, cancel context.CancelFunc) *interruptGuard {
	return &interruptGuard{
		signals: signals,
		out:     out,
		cancel:  cancel,
		exit:    os.Exit,
		hold:    func() func() { return func() {} },
		in:      bufio.NewReader(in),
		lines:   make(chan string, 1),
		quit:    make(chan struct{}),
	}
}

// watch handles interrupts until ctx is done or a stop is confirmed
func (g *interruptGuard) watch(ctx context.Context) {
	defer g.stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-g.signals:
			if g.confirm(ctx) {
				g.cancel()
				return
			}
		}
	}
}

// confirm prompts and reports whether the answer was yes
func (g *interruptGuard) confirm(ctx context.Context) bool {
	release := g.hold()
	defer release()

	fmt.Fprint(g.out, "\nDo you really want to stop? [y/N] ")
	g.readOnce.Do(func() { go g.readLines() })

	select {
	case line, ok := <-g.lines:
		if !ok {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	case <-g.signals:
		fmt.Fprintln(g.out, "\nforced exit")
		g.exit(exitForced)
		return true
	case <-ctx.Done():
		fmt.Fprintln(g.out)
		return false
	}
}

// stop lets the reader goroutine exit instead of waiting on an answer nobody reads
func (g *interruptGuard) stop() {
	g.quitOnce.Do(func() { close(g.quit) })
}

// readLines feeds stdin lines to confirm; closes lines on EOF or stop
func (g *interruptGuard) readLines() {
	defer close(g.lines)
	for {
		line, err := g.in.ReadString('\n')
		if line != "" {
			select {
			case <-g.quit:
				return
			default:
			}
			select {
			case g.lines <- line:
			case <-g.quit:
				return
			}
		}
		if err != nil {
			return
		}
	}
}
