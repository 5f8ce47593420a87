package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/grayevo/genetic"
	"github.com/lixenwraith/grayevo/genetic/fitness"
	"github.com/lixenwraith/grayevo/preview"
)

type gridSnapshot = genetic.Snapshot[genetic.Grid, int64]

// liveView shows the latest best individual while the engine runs on another goroutine
type liveView struct {
	screen tcell.Screen
	title  string
	cells  int
	mode   preview.RenderMode
	cancel context.CancelFunc

	// frames holds at most one pending snapshot; newer ones replace it
	frames chan gridSnapshot

	last       gridSnapshot
	hasFrame   bool
	confirming bool
	finished   bool
	status     string
}

func newLiveView(screen tcell.Screen, title string, cells int, mode preview.RenderMode, cancel context.CancelFunc) *liveView {
	return &liveView{
		screen: screen,
		title:  title,
		cells:  cells,
		mode:   mode,
		cancel: cancel,
		frames: make(chan gridSnapshot, 1),
	}
}

// Offer queues snap for display without blocking the engine
// The grid is cloned so the view never shares storage with the population
func (v *liveView) Offer(snap gridSnapshot) {
	snap.Best.Data = snap.Best.Data.Clone()
	for {
		select {
		case v.frames <- snap:
			return
		default:
		}
		select {
		case <-v.frames:
		default:
		}
	}
}

// Run drives the view until done is closed and a key is pressed, or the run is cancelled
func (v *liveView) Run(done <-chan struct{}) {
	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go v.screen.ChannelEvents(events, quit)

	v.draw()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !v.handleEvent(ev) {
				return
			}
		case snap := <-v.frames:
			v.last, v.hasFrame = snap, true
		case <-done:
			done = nil
			v.finished = true
			v.confirming = false
			// Drain the final frame so the closing screen shows it
			select {
			case snap := <-v.frames:
				v.last, v.hasFrame = snap, true
			default:
			}
		}
		v.draw()
	}
}

// handleEvent returns false when the view should close
func (v *liveView) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if v.finished {
			return false
		}
		if v.confirming {
			if ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y') {
				v.cancel()
				v.status = "stopping..."
			}
			v.confirming = false
			return true
		}
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			v.confirming = true
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *liveView) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	header := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	v.drawText(0, 0, header, v.title)

	if v.hasFrame {
		frame := preview.Convert(v.last.Best.Data, w, max(0, h-3), v.mode)
		for y := 0; y < frame.Height; y++ {
			for x := 0; x < frame.Width; x++ {
				c := frame.At(x, y)
				style := tcell.StyleDefault.
					Foreground(grayColor(c.Fg)).
					Background(grayColor(c.Bg))
				v.screen.SetContent(x, y+1, c.Rune, nil, style)
			}
		}
		v.drawText(0, h-2, dim, v.statusLine())
	}

	switch {
	case v.confirming:
		v.drawText(0, h-1, tcell.StyleDefault.Foreground(tcell.ColorYellow), "Do you really want to stop? [y/N]")
	case v.finished:
		v.drawText(0, h-1, dim, "finished, press any key to exit")
	case v.status != "":
		v.drawText(0, h-1, dim, v.status)
	default:
		v.drawText(0, h-1, dim, "q/Esc: stop")
	}

	v.screen.Show()
}

func (v *liveView) statusLine() string {
	s := v.last
	return fmt.Sprintf("gen %s  fitness %s  similarity %.2f%%  rate %.3f  stagnation %d  %s",
		humanize.Comma(int64(s.Generation)),
		humanize.Comma(s.Best.Score),
		fitness.Similarity(s.Best.Score, v.cells)*100,
		s.MutationRate,
		s.Stagnation,
		s.Status)
}

func (v *liveView) drawText(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func grayColor(level uint8) tcell.Color {
	return tcell.NewRGBColor(int32(level), int32(level), int32(level))
}
