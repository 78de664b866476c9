package audio

import (
	"sync"
	"time"

	"laserpuzzle/internal/logging"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// buzzCooldown keeps a beam resting on a receiver from buzzing every frame.
const buzzCooldown = time.Second

// Player plays the puzzle feedback sounds through the speaker.
// A disabled player accepts every call and plays nothing.
type Player struct {
	Enabled bool
	Rate    beep.SampleRate
	Volume  float64

	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	lastBuzz    time.Time
	now         func() time.Time
}

func NewPlayer(enabled bool, sampleRate int, volume float64) *Player {
	return &Player{
		Enabled: enabled,
		Rate:    beep.SampleRate(sampleRate),
		Volume:  volume,
		mixer:   &beep.Mixer{},
		now:     time.Now,
	}
}

// Init opens the speaker. A failure disables the player and is returned so the
// host can log it and carry on silently.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.Enabled || p.initialized {
		return nil
	}
	if err := speaker.Init(p.Rate, p.Rate.N(100*time.Millisecond)); err != nil {
		p.Enabled = false
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	logging.L().Named("audio").Info("speaker initialized", zap.Int("sampleRate", int(p.Rate)))
	return nil
}

func (p *Player) PlaySolved() {
	p.play(Chime(p.Rate, p.Volume))
}

// PlayPartial buzzes at most once per second.
func (p *Player) PlayPartial() {
	p.mu.Lock()
	now := p.now()
	if now.Sub(p.lastBuzz) < buzzCooldown {
		p.mu.Unlock()
		return
	}
	p.lastBuzz = now
	p.mu.Unlock()

	p.play(Buzz(p.Rate, p.Volume))
}

// Close silences everything queued.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

func (p *Player) play(s beep.Streamer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}
