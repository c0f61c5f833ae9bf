package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// cue describes a short swept tone.
type cue struct {
	from, to float64 // Frequency sweep in Hz
	duration time.Duration
	square   bool
	gain     float64
}

var cues = [eventCount]cue{
	Cursor:  {from: 660, to: 660, duration: 30 * time.Millisecond, gain: 0.3},
	Confirm: {from: 520, to: 880, duration: 80 * time.Millisecond, gain: 0.4},
	Graze:   {from: 1400, to: 1600, duration: 25 * time.Millisecond, gain: 0.15},
	Dodge:   {from: 900, to: 1500, duration: 120 * time.Millisecond, gain: 0.4},
	BossHit: {from: 220, to: 90, duration: 250 * time.Millisecond, square: true, gain: 0.5},
	Death:   {from: 400, to: 40, duration: 600 * time.Millisecond, square: true, gain: 0.5},
	Win:     {from: 440, to: 1320, duration: 700 * time.Millisecond, gain: 0.5},
}

// Synth plays cues on the local audio device.
type Synth struct {
	mu       sync.Mutex
	mixer    *beep.Mixer
	music    *beep.Ctrl
	musicVol *effects.Volume
	settings Settings
	logger   *log.Logger
}

// NewSynth opens the default audio device.
func NewSynth(logger *log.Logger) (*Synth, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}

	s := &Synth{mixer: &beep.Mixer{}, logger: logger}
	s.musicVol = &effects.Volume{Streamer: newDrone(sampleRate), Base: 2}
	s.music = &beep.Ctrl{Streamer: s.musicVol, Paused: true}
	s.mixer.Add(s.music)
	speaker.Play(s.mixer)
	return s, nil
}

// Play mixes in the cue for e.
func (s *Synth) Play(e Event) {
	if e >= eventCount {
		return
	}
	s.mu.Lock()
	settings := s.settings
	s.mu.Unlock()
	if !settings.Enabled {
		return
	}
	c := cues[e]
	var streamer beep.Streamer = newTone(sampleRate, c)
	switch {
	case e == Win:
		// Rising sweep followed by a held top note.
		streamer = beep.Seq(streamer, newTone(sampleRate, cue{from: c.to, to: c.to, duration: 300 * time.Millisecond}))
	case c.from == c.to && !c.square:
		sine, err := generators.SineTone(sampleRate, c.from)
		if err != nil {
			s.logger.Warn("tone", "event", e, "err", err)
			return
		}
		streamer = beep.Take(sampleRate.N(c.duration), sine)
	}
	streamer = volume(streamer, settings.Master*settings.SFX*c.gain)
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Configure applies volumes and starts or stops the background drone.
func (s *Synth) Configure(settings Settings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	level := settings.Master * settings.Music
	speaker.Lock()
	s.music.Paused = !settings.Enabled || level <= 0
	setVolume(s.musicVol, level*0.3)
	speaker.Unlock()
}

// Close silences everything.
func (s *Synth) Close() {
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	s.logger.Debug("audio closed")
}

// volume wraps streamer with a linear gain in [0, 1].
func volume(streamer beep.Streamer, gain float64) beep.Streamer {
	v := &effects.Volume{Streamer: streamer, Base: 2}
	setVolume(v, gain)
	return v
}

func setVolume(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Silent = true
		v.Volume = 0
		return
	}
	v.Silent = false
	v.Volume = math.Log2(gain)
}

// tone is a swept oscillator with a linear decay envelope.
type tone struct {
	c     cue
	phase float64
	pos   int
	total int
	rate  beep.SampleRate
}

func newTone(rate beep.SampleRate, c cue) *tone {
	return &tone{c: c, total: rate.N(c.duration), rate: rate}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		progress := float64(t.pos) / float64(t.total)
		freq := t.c.from + (t.c.to-t.c.from)*progress

		var v float64
		if t.c.square {
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
			v *= 0.5
		} else {
			v = math.Sin(2 * math.Pi * t.phase)
		}
		v *= 1 - progress

		samples[i][0] = v
		samples[i][1] = v
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// drone is an endless low two-note pad.
type drone struct {
	pos  int
	rate beep.SampleRate
}

func newDrone(rate beep.SampleRate) *drone {
	return &drone{rate: rate}
}

func (d *drone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(d.pos) / float64(d.rate)
		swell := 0.5 + 0.5*math.Sin(2*math.Pi*t/8)
		v := 0.5*math.Sin(2*math.Pi*55*t) + 0.3*math.Sin(2*math.Pi*82.5*t)*swell
		samples[i][0] = v * 0.6
		samples[i][1] = v * 0.6
		d.pos++
	}
	return len(samples), true
}

func (d *drone) Err() error { return nil }
