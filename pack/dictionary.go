package pack

import (
	"encoding/json"

	"github.com/dawnengine/yage2/asset"
	"github.com/dawnengine/yage2/dawnerr"
)

// decodeDictionary parses a Dictionary asset's body as a flat JSON
// object of string key/value pairs (localization tables, tuning data).
func decodeDictionary(raw []byte) (asset.IR, error) {
	entries := map[string]string{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, dawnerr.New(dawnerr.Decode, "pack.decodeDictionary", err)
	}
	return asset.IRDictionary{Entries: entries}, nil
}
