package assets

import (
	"bytes"
	"fmt"
	"log"
	"sort"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/climber/player"
	"github.com/milk9111/climber/prefabs"
)

var _ player.Audio = (*SoundBank)(nil)

// SoundBank holds pre-rendered clips and plays them on the shared audio
// context. Positional sounds fade linearly with distance from Listener.
type SoundBank struct {
	clips  map[player.Sound][]byte
	loops  map[player.Sound]*audio.Player
	volume float64
	fade   float64

	Listener cp.Vector
	Muted    bool
}

// NewSoundBank renders every sound in spec. Rendering happens here so that
// playback never allocates more than a player.
func NewSoundBank(spec prefabs.SoundBankSpec) (*SoundBank, error) {
	if spec.SampleRate != 0 && spec.SampleRate != SampleRate {
		return nil, fmt.Errorf("assets: sound bank sample rate %d, want %d", spec.SampleRate, SampleRate)
	}
	b := &SoundBank{
		clips:  make(map[player.Sound][]byte, len(spec.Sounds)),
		loops:  make(map[player.Sound]*audio.Player),
		volume: spec.Volume,
		fade:   spec.Range,
	}
	if b.volume <= 0 {
		b.volume = 1
	}

	rate := beep.SampleRate(SampleRate)
	for _, s := range spec.Sounds {
		if s.Name == "" {
			return nil, fmt.Errorf("assets: sound bank has an unnamed sound")
		}
		if s.File != "" {
			pcm, err := LoadPCM(s.File)
			if err != nil {
				return nil, err
			}
			if s.Volume > 0 && s.Volume != 1 {
				pcm = scalePCM(pcm, s.Volume)
			}
			b.clips[player.Sound(s.Name)] = pcm
			continue
		}
		if s.Duration <= 0 {
			return nil, fmt.Errorf("assets: sound %q has no duration", s.Name)
		}
		b.clips[player.Sound(s.Name)] = Render(Synthesize(s, rate), Length(s, rate), 1)
	}
	return b, nil
}

// scalePCM applies gain to 16-bit PCM in place.
func scalePCM(pcm []byte, gain float64) []byte {
	for i := 0; i+1 < len(pcm); i += 2 {
		v := float64(int16(uint16(pcm[i]) | uint16(pcm[i+1])<<8))
		v = min(max(v*gain, -32768), 32767)
		u := uint16(int16(v))
		pcm[i] = byte(u)
		pcm[i+1] = byte(u >> 8)
	}
	return pcm
}

func (b *SoundBank) Clip(sound player.Sound) ([]byte, bool) {
	pcm, ok := b.clips[sound]
	return pcm, ok
}

func (b *SoundBank) Names() []string {
	names := make([]string, 0, len(b.clips))
	for name := range b.clips {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// gainAt is the playback volume for a sound at world position at.
func (b *SoundBank) gainAt(at cp.Vector) float64 {
	if b.fade <= 0 {
		return b.volume
	}
	d := at.Distance(b.Listener)
	if d >= b.fade {
		return 0
	}
	return b.volume * (1 - d/b.fade)
}

func (b *SoundBank) PlayOneShot(sound player.Sound, at cp.Vector) {
	pcm, ok := b.clips[sound]
	if !ok || b.Muted {
		return
	}
	gain := b.gainAt(at)
	if gain <= 0 {
		return
	}
	p := Context().NewPlayerFromBytes(pcm)
	p.SetVolume(gain)
	p.Play()
}

// SetLoop starts or stops a looping clip. Starting a loop that is already
// playing does nothing.
func (b *SoundBank) SetLoop(sound player.Sound, playing bool) {
	p := b.loops[sound]
	if !playing {
		if p != nil {
			p.Pause()
			if err := p.Rewind(); err != nil {
				log.Printf("assets: rewind %s: %v", sound, err)
			}
		}
		return
	}
	if b.Muted {
		return
	}
	if p == nil {
		pcm, ok := b.clips[sound]
		if !ok {
			return
		}
		loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		var err error
		p, err = Context().NewPlayer(loop)
		if err != nil {
			log.Printf("assets: loop %s: %v", sound, err)
			return
		}
		p.SetVolume(b.volume)
		b.loops[sound] = p
	}
	if !p.IsPlaying() {
		p.Play()
	}
}

// StopAll silences every loop, used when the game pauses.
func (b *SoundBank) StopAll() {
	for sound := range b.loops {
		b.SetLoop(sound, false)
	}
}
