package audio

import "testing"

func rampBlock() Block {
	var b Block
	for c := range b {
		for i := range b[c] {
			b[c][i] = float32(i) / float32(BlockSize)
		}
	}
	return b
}

func TestBypassEffectPassesInputThrough(t *testing.T) {
	router := NewRouter()
	bypass := NewBypass(router)
	in := rampBlock()
	var out Block
	bypass.Render(&in, &out, BlockInfo{SampleRate: 44100})
	if out != in {
		t.Fatalf("expected Bypass to pass the block through unchanged")
	}
}

func TestSoftClipSaturatesLoudSignal(t *testing.T) {
	router := NewRouter()
	clip := NewSoftClip(router)
	router.Dispatch(clip.target, SoftClipDrive{Drive: 8})

	var loud Block
	for c := range loud {
		for i := range loud[c] {
			loud[c][i] = 1
		}
	}
	var out Block
	clip.Render(&loud, &out, BlockInfo{SampleRate: 44100})
	for c := range out {
		for _, s := range out[c] {
			if s <= 0.9 || s > 1 {
				t.Fatalf("expected a loud signal at high drive to saturate near 1, got %f", s)
			}
		}
	}
}

func TestSoftClipBypassToggle(t *testing.T) {
	router := NewRouter()
	clip := NewSoftClip(router)
	router.Dispatch(clip.target, SoftClipBypass{Bypassed: true})
	in := rampBlock()
	var out Block
	clip.Render(&in, &out, BlockInfo{SampleRate: 44100})
	if out != in {
		t.Fatalf("expected a bypassed SoftClip to pass the block through unchanged")
	}
}

func TestFIRLowPassAttenuatesRelativeToUnfiltered(t *testing.T) {
	router := NewRouter()
	fir := NewFIR(router, 31, 0.1)

	// A near-Nyquist alternating signal: a 0.1-Nyquist lowpass should
	// strongly attenuate it.
	var in Block
	for i := 0; i < BlockSize; i++ {
		v := float32(1)
		if i%2 == 1 {
			v = -1
		}
		in[0][i] = v
		in[1][i] = v
	}
	var out Block
	fir.Render(&in, &out, BlockInfo{SampleRate: 44100})

	var inEnergy, outEnergy float32
	for i := 0; i < BlockSize; i++ {
		inEnergy += in[0][i] * in[0][i]
		outEnergy += out[0][i] * out[0][i]
	}
	if outEnergy >= inEnergy {
		t.Fatalf("expected the low-pass filter to attenuate a near-Nyquist signal: in=%f out=%f", inEnergy, outEnergy)
	}
}

func TestFreeverbProducesWetSignalDistinctFromDry(t *testing.T) {
	router := NewRouter()
	// A low sample rate shrinks the comb/allpass delay lines (tuned in
	// milliseconds) down to a handful of samples, so the impulse's
	// reflections show up within this same 128-sample block.
	verb := NewFreeverb(router, 300)
	router.Dispatch(verb.target, FreeverbSetWet{Wet: 0.8})

	var impulse Block
	impulse[0][0] = 1
	impulse[1][0] = 1
	var out Block
	verb.Render(&impulse, &out, BlockInfo{SampleRate: 300})

	var tailEnergy float32
	for c := range out {
		for i := 1; i < BlockSize; i++ {
			tailEnergy += out[c][i] * out[c][i]
		}
	}
	if tailEnergy == 0 {
		t.Fatalf("expected the reverb's delayed taps to carry energy after the impulse sample")
	}
}

func TestEffectChainRunsEffectsInSeries(t *testing.T) {
	router := NewRouter()
	clip := NewSoftClip(router)
	router.Dispatch(clip.target, SoftClipDrive{Drive: 1})
	bypass := NewBypass(router)
	chain := NewEffectChain(clip, bypass)

	in := rampBlock()
	var out Block
	chain.Render(&in, &out, BlockInfo{SampleRate: 44100})

	var want Block
	clip.Render(&in, &want, BlockInfo{SampleRate: 44100})
	if out != want {
		t.Fatalf("expected EffectChain(clip, bypass) to equal clip alone, since bypass is transparent")
	}
}
