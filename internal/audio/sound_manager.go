package audio

import (
	"sync"
	"time"

	"go-ball-capture/internal/event"
	"go-ball-capture/internal/system"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(48000)

// SoundManager plays short synthesized cues for scene events. Until
// Initialize succeeds it ignores everything, so a muted or headless run can
// subscribe it all the same.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      map[event.EventType]int
	logger      *zap.Logger
}

// NewSoundManager creates a new sound manager
func NewSoundManager(volume float64, logger *zap.Logger) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		played: make(map[event.EventType]int),
		logger: logger,
	}
}

// Initialize opens the audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// OnEvent реализует event.Listener.
func (sm *SoundManager) OnEvent(e event.Event) {
	alert := false
	if info, ok := e.Data.(system.BlinkInfo); ok {
		alert = info.Alert
	}
	s := Cue(e, alert, sm.volume, sampleRate)
	if s == nil {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	sm.played[e.Type]++
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Played returns how many cues of a type were queued.
func (sm *SoundManager) Played(t event.EventType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[t]
}
