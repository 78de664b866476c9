package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	total := 0
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %f", total+i, buf[i][0])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
}

func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := Tone(440, 100*time.Millisecond, rate)
	if got, want := drain(t, s), rate.N(100*time.Millisecond); got != want {
		t.Errorf("Expected %d samples, got %d", want, got)
	}
	if s.Err() != nil {
		t.Errorf("Expected no error, got: %v", s.Err())
	}
}

func TestToneStartsSilent(t *testing.T) {
	s := Tone(440, 50*time.Millisecond, beep.SampleRate(8000))
	buf := make([][2]float64, 1)
	s.Stream(buf)
	if buf[0][0] != 0 {
		t.Errorf("Expected first sample to be silent, got %f", buf[0][0])
	}
}

func TestChimeIsFourNotes(t *testing.T) {
	rate := beep.SampleRate(22050)
	want := 4 * rate.N(120*time.Millisecond)
	if got := drain(t, Chime(rate, 0.5)); got != want {
		t.Errorf("Expected %d samples, got %d", want, got)
	}
}

func TestSilentVolume(t *testing.T) {
	s := Buzz(beep.SampleRate(8000), 0)
	buf := make([][2]float64, 64)
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != 0 {
			t.Fatalf("Expected silence, got %f at %d", buf[i][0], i)
		}
	}
}

func TestUninitializedPlayerIsNoop(t *testing.T) {
	p := NewPlayer(false, 44100, 1)
	if err := p.Init(); err != nil {
		t.Fatalf("Init on a disabled player: %v", err)
	}
	p.PlaySolved()
	p.PlayPartial()
	p.Close()
}

func TestPartialCooldown(t *testing.T) {
	p := NewPlayer(false, 44100, 1)
	now := time.Unix(100, 0)
	p.now = func() time.Time { return now }

	p.PlayPartial()
	first := p.lastBuzz
	now = now.Add(500 * time.Millisecond)
	p.PlayPartial()
	if !p.lastBuzz.Equal(first) {
		t.Error("Expected buzz within cooldown to be dropped")
	}
	now = now.Add(time.Second)
	p.PlayPartial()
	if !p.lastBuzz.Equal(now) {
		t.Error("Expected buzz after cooldown to play")
	}
}
