package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// tone is a sine wave with a linear attack and release.
type tone struct {
	freq     float64
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
	attack   int
	release  int
}

// Tone returns a sine streamer at freq lasting d, shaped to avoid clicks.
func Tone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	edge := min(rate.N(10*time.Millisecond), total/2)
	return &tone{
		freq:    freq,
		rate:    rate,
		total:   total,
		attack:  edge,
		release: rate.N(d / 3),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}
		v := math.Sin(2*math.Pi*t.phase) * t.gain()
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func (t *tone) gain() float64 {
	if t.attack > 0 && t.position < t.attack {
		return float64(t.position) / float64(t.attack)
	}
	left := t.total - t.position
	if t.release > 0 && left < t.release {
		return float64(left) / float64(t.release)
	}
	return 1
}

// Chime is the rising arpeggio played when a receiver is solved.
func Chime(rate beep.SampleRate, volume float64) beep.Streamer {
	notes := []float64{523.25, 659.25, 783.99, 1046.5}
	parts := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		parts = append(parts, Tone(f, 120*time.Millisecond, rate))
	}
	return withVolume(beep.Seq(parts...), volume)
}

// Buzz is the short low tone for a beam that reached a receiver too early.
func Buzz(rate beep.SampleRate, volume float64) beep.Streamer {
	return withVolume(Tone(110, 150*time.Millisecond, rate), volume*0.6)
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
