package playerstate

import "sort"

// Stage runs once the sequence has been running for At seconds.
type Stage struct {
	At  float32
	Run func()
}

// Sequence is a cancellable timeline of stages advanced by Tick.
type Sequence struct {
	stages    []Stage
	elapsed   float32
	next      int
	cancelled bool
}

func NewSequence(stages ...Stage) *Sequence {
	s := &Sequence{stages: append([]Stage(nil), stages...)}
	sort.SliceStable(s.stages, func(i, j int) bool { return s.stages[i].At < s.stages[j].At })
	return s
}

// Tick advances time and runs every stage now due, in order.
func (s *Sequence) Tick(deltaTime float32) {
	if s.cancelled {
		return
	}
	s.elapsed += deltaTime
	for s.next < len(s.stages) && s.stages[s.next].At <= s.elapsed {
		stage := s.stages[s.next]
		s.next++
		if stage.Run != nil {
			stage.Run()
		}
		if s.cancelled {
			return
		}
	}
}

// Cancel stops the sequence; no further stages run.
func (s *Sequence) Cancel() {
	s.cancelled = true
}

// Done reports whether every stage ran or the sequence was cancelled.
func (s *Sequence) Done() bool {
	return s.cancelled || s.next >= len(s.stages)
}

func (s *Sequence) Elapsed() float32 {
	return s.elapsed
}
