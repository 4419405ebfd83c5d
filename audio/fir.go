package audio

import "math"

// FIRSetCutoff is the event.Payload shape that recomputes FIR's taps for
// a new cutoff, expressed as a fraction of Nyquist in (0, 1).
type FIRSetCutoff struct{ Cutoff float32 }

// FIR is a windowed-sinc low-pass Effect with a fixed tap count, applied
// independently per channel. History carries samples across block
// boundaries so the convolution is continuous.
type FIR struct {
	target  TargetID
	taps    []float32
	history [Channels][]float32 // last len(taps)-1 input samples, oldest first
	cursor  [Channels]int
}

// NewFIR returns an N-tap low-pass FIR registered on router, with an
// initial cutoff expressed as a fraction of Nyquist in (0, 1).
func NewFIR(router *Router, taps int, cutoff float32) *FIR {
	f := &FIR{target: NewTargetID()}
	f.setCutoff(taps, cutoff)
	router.Register(f.target, f.dispatch)
	return f
}

func (f *FIR) Targets() []TargetID { return []TargetID{f.target} }
func (f *FIR) FrameStart()         {}

func (f *FIR) dispatch(payload any) {
	if p, ok := payload.(FIRSetCutoff); ok {
		f.setCutoff(len(f.taps), p.Cutoff)
	}
}

// setCutoff (re)computes a windowed-sinc low-pass kernel of the given
// tap count and cutoff (fraction of Nyquist), using a Hamming window,
// and resets the convolution history.
func (f *FIR) setCutoff(tapCount int, cutoff float32) {
	if tapCount < 1 {
		tapCount = 1
	}
	if cutoff <= 0 {
		cutoff = 0.01
	}
	if cutoff >= 1 {
		cutoff = 0.99
	}
	taps := make([]float32, tapCount)
	mid := float64(tapCount-1) / 2
	var sum float64
	for i := range taps {
		x := float64(i) - mid
		var sinc float64
		if x == 0 {
			sinc = float64(cutoff)
		} else {
			sinc = math.Sin(math.Pi*float64(cutoff)*x) / (math.Pi * x)
		}
		window := 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(tapCount-1))
		v := sinc * window
		taps[i] = float32(v)
		sum += v
	}
	if sum != 0 {
		for i := range taps {
			taps[i] = float32(float64(taps[i]) / sum)
		}
	}
	f.taps = taps
	for c := range f.history {
		f.history[c] = make([]float32, tapCount-1)
		f.cursor[c] = 0
	}
}

func (f *FIR) Render(in *Block, out *Block, info BlockInfo) {
	historyLen := len(f.taps) - 1
	for c := 0; c < Channels; c++ {
		hist := f.history[c]
		for i := 0; i < BlockSize; i++ {
			var acc float32
			for t, tap := range f.taps {
				age := len(f.taps) - 1 - t
				var sample float32
				if age == 0 {
					sample = in[c][i]
				} else if i-age >= 0 {
					sample = in[c][i-age]
				} else if historyLen > 0 {
					idx := historyLen + (i - age)
					if idx >= 0 && idx < historyLen {
						sample = hist[idx]
					}
				}
				acc += tap * sample
			}
			out[c][i] = acc
		}
		if historyLen > 0 {
			if BlockSize >= historyLen {
				copy(hist, in[c][BlockSize-historyLen:])
			} else {
				copy(hist, hist[BlockSize:])
				copy(hist[historyLen-BlockSize:], in[c][:])
			}
		}
	}
}
