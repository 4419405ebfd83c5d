package audio

import "testing"

func TestActorAttenuatesByDistanceAndRemoves(t *testing.T) {
	router := NewRouter()
	actor := NewActor(router)

	samples := make([]float32, BlockSize)
	for i := range samples {
		samples[i] = 1
	}

	router.Dispatch(actor.target, ActorSetListener{Pos: Vec3{}})
	router.Dispatch(actor.target, ActorAdd{ID: 1, Samples: append([]float32{}, samples...), Pos: Vec3{X: 0}, Gain: 1})
	router.Dispatch(actor.target, ActorAdd{ID: 2, Samples: append([]float32{}, samples...), Pos: Vec3{X: 100}, Gain: 1})

	actor.FrameStart()
	block := actor.Render(BlockInfo{SampleRate: 44100})

	if block[0][0] <= 0 {
		t.Fatalf("expected a non-silent mix of two voices, got %f", block[0][0])
	}

	// A lone, very distant voice should be nearly inaudible relative to
	// one at the listener's position.
	router2 := NewRouter()
	near := NewActor(router2)
	router2.Dispatch(near.target, ActorAdd{ID: 1, Samples: append([]float32{}, samples...), Pos: Vec3{}, Gain: 1})
	near.FrameStart()
	nearBlock := near.Render(BlockInfo{SampleRate: 44100})

	far := NewActor(router2)
	router2.Dispatch(far.target, ActorAdd{ID: 1, Samples: append([]float32{}, samples...), Pos: Vec3{X: 1000}, Gain: 1})
	far.FrameStart()
	farBlock := far.Render(BlockInfo{SampleRate: 44100})

	if farBlock[0][0] >= nearBlock[0][0] {
		t.Fatalf("expected a distant voice to be attenuated below a co-located one: far=%f near=%f", farBlock[0][0], nearBlock[0][0])
	}

	router.Dispatch(actor.target, ActorRemove{ID: 1})
	router.Dispatch(actor.target, ActorRemove{ID: 2})
	actor.FrameStart()
	silent := actor.Render(BlockInfo{SampleRate: 44100})
	if silent[0][0] != 0 {
		t.Fatalf("expected silence after removing every voice, got %f", silent[0][0])
	}
}
