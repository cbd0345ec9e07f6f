package assets

import (
	"encoding/binary"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/milk9111/climber/prefabs"
)

type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// ParseWave maps a spec wave name to a WaveType. Unknown names are sine.
func ParseWave(name string) WaveType {
	switch name {
	case "square":
		return WaveSquare
	case "saw":
		return WaveSaw
	case "triangle":
		return WaveTriangle
	case "noise":
		return WaveNoise
	}
	return WaveSine
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// oscillator is a tone whose frequency slides linearly from freq to
// freqEnd over its length.
type oscillator struct {
	freq, freqEnd float64
	phase         float64
	length        int
	position      int
	wave          WaveType
	rate          beep.SampleRate
	noise         *rand.Rand
}

func newOscillator(freq, freqEnd float64, length int, wave WaveType, rate beep.SampleRate) *oscillator {
	if freqEnd <= 0 {
		freqEnd = freq
	}
	return &oscillator{
		freq:    freq,
		freqEnd: freqEnd,
		length:  length,
		wave:    wave,
		rate:    rate,
		noise:   rand.New(rand.NewSource(1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.length)
		freq := o.freq + (o.freqEnd-o.freq)*t
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps the start and end of a stream linearly.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, total, attack, release int) *envelope {
	if attack+release > total {
		attack = total / 2
		release = total - attack
	}
	return &envelope{streamer: s, attack: attack, release: release, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		switch {
		case e.position < e.attack:
			gain = float64(e.position) / float64(e.attack)
		case e.position >= e.total-e.release && e.release > 0:
			gain = float64(e.total-e.position-1) / float64(e.release)
		}
		gain = math.Max(0, gain)
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly. Log2(0) is -Inf, so zero is silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Length is the number of samples spec renders to, the longest of the tone
// and its layers.
func Length(spec prefabs.SoundSpec, rate beep.SampleRate) int {
	n := rate.N(seconds(spec.Duration))
	for _, l := range spec.Layers {
		if ln := Length(l, rate); ln > n {
			n = ln
		}
	}
	return n
}

// Synthesize builds the streamer for spec. A missing volume means full
// volume.
func Synthesize(spec prefabs.SoundSpec, rate beep.SampleRate) beep.Streamer {
	length := rate.N(seconds(spec.Duration))
	osc := newOscillator(spec.Freq, spec.FreqEnd, length, ParseWave(spec.Wave), rate)
	shaped := newEnvelope(osc, length, rate.N(seconds(spec.Attack)), rate.N(seconds(spec.Release)))

	vol := spec.Volume
	if vol == 0 {
		vol = 1
	}
	tone := newVolume(shaped, vol)
	if len(spec.Layers) == 0 {
		return tone
	}

	parts := []beep.Streamer{tone}
	for _, l := range spec.Layers {
		parts = append(parts, Synthesize(l, rate))
	}
	return beep.Take(Length(spec, rate), beep.Mix(parts...))
}

// Render drains up to n samples of s into 16-bit little-endian stereo PCM,
// the format audio.Context plays.
func Render(s beep.Streamer, n int, gain float64) []byte {
	out := make([]byte, 0, n*4)
	buf := make([][2]float64, 512)
	for n > 0 {
		chunk := buf
		if n < len(chunk) {
			chunk = chunk[:n]
		}
		got, ok := s.Stream(chunk)
		for _, frame := range chunk[:got] {
			for _, v := range frame {
				v = math.Max(-1, math.Min(1, v*gain))
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*math.MaxInt16)))
			}
		}
		n -= got
		if !ok || got == 0 {
			break
		}
	}
	return out
}
