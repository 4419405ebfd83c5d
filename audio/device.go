package audio

// Device is the platform audio callback's view of the engine: it opens a
// hardware stream at a fixed sample rate and channel count, then repeatedly
// calls Pull to fill its native buffer. Device itself is a platform
// binding (cgo to OpenAL/WASAPI/CoreAudio/ALSA) and out of this module's
// scope; only the contract a binding must satisfy is specified here.
type Device interface {
	Init(sampleRate uint32) error
	Dispose()
	SetGain(gain float64)
	// Pull is called by the platform's realtime callback once per
	// period, with buf sized frameCount*Channels.
	Pull(buf []float32, frameCount int)
}

// SinkDevice adapts a Sink to the Device contract, the shape any real
// platform binding wraps around.
type SinkDevice struct {
	sink *Sink
	gain float64
}

// NewSinkDevice returns a Device pulling from sink.
func NewSinkDevice(sink *Sink) *SinkDevice { return &SinkDevice{sink: sink, gain: 1} }

func (d *SinkDevice) Init(sampleRate uint32) error { return nil }
func (d *SinkDevice) Dispose()                     {}
func (d *SinkDevice) SetGain(gain float64)         { d.gain = gain }

func (d *SinkDevice) Pull(buf []float32, frameCount int) {
	d.sink.Pull(buf, frameCount)
	if d.gain != 1 {
		g := float32(d.gain)
		for i := range buf {
			buf[i] *= g
		}
	}
}

// NoDevice is a Device mock used when audio initialization fails or in
// tests that don't want a real Sink, mirroring the teacher's NoAudio
// stand-in.
type NoDevice struct{}

func (NoDevice) Init(sampleRate uint32) error { return nil }
func (NoDevice) Dispose()                     {}
func (NoDevice) SetGain(gain float64)         {}
func (NoDevice) Pull(buf []float32, frameCount int) {
	for i := range buf {
		buf[i] = 0
	}
}
