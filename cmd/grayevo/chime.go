package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	chimeSampleRate = beep.SampleRate(44100)
	chimeFrequency  = 880
	chimeDuration   = 300 * time.Millisecond
)

// playChime plays a short sine tone and waits for it to finish
// Audio failures are returned for the caller to log; they never fail the run
func playChime() error {
	if err := speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/10)); err != nil {
		return err
	}
	defer speaker.Close()

	sine, err := generators.SineTone(chimeSampleRate, chimeFrequency)
	if err != nil {
		return err
	}

	done := make(chan struct{})
	speaker.Play(beep.Seq(
		beep.Take(chimeSampleRate.N(chimeDuration), sine),
		beep.Callback(func() { close(done) }),
	))

	select {
	case <-done:
	case <-time.After(chimeDuration + time.Second):
	}
	return nil
}
