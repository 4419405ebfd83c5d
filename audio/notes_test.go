package audio

import "testing"

func TestNotesTriggersVoiceAtScheduledTime(t *testing.T) {
	router := NewRouter()
	events := []NoteEvent{
		{TimeSeconds: 0, Pitch: 69, Velocity: 1, Duration: 0.5}, // A4, 440Hz
	}
	notes := NewNotes(router, WaveformSine, events)
	notes.voice.dispatch(WaveformEnvelope{AttackMS: 0})

	notes.FrameStart()
	block := notes.Render(BlockInfo{SampleRate: 44100})

	var peak float32
	for _, s := range block[0] {
		if abs32(s) > peak {
			peak = abs32(s)
		}
	}
	if peak == 0 {
		t.Fatalf("expected the scheduled note at t=0 to produce sound in the first block")
	}
}

func TestNotesSilentAfterAllEventsExpire(t *testing.T) {
	router := NewRouter()
	events := []NoteEvent{
		{TimeSeconds: 0, Pitch: 69, Velocity: 1, Duration: 0.0001},
	}
	notes := NewNotes(router, WaveformSine, events)
	notes.voice.dispatch(WaveformEnvelope{AttackMS: 0})

	info := BlockInfo{SampleRate: 44100, SampleIndex: 44100} // far past the note's end
	notes.FrameStart()
	block := notes.Render(info)

	for _, s := range block[0] {
		if s != 0 {
			t.Fatalf("expected silence long after the only note expired, got %f", s)
		}
	}
}
