package pack

import (
	"encoding/json"

	"github.com/dawnengine/yage2/asset"
	"github.com/dawnengine/yage2/dawnerr"
)

// decodeNotes parses a Notes asset's body as a JSON array of note
// events. Notes files are small, hand-authored sequencer scores with no
// binary format in the rest of the pack to imitate, so they use the
// standard library's encoding/json rather than a bespoke text format.
func decodeNotes(raw []byte) (asset.IR, error) {
	var events []asset.NoteEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, dawnerr.New(dawnerr.Decode, "pack.decodeNotes", err)
	}
	return asset.IRNotes{Events: events}, nil
}
