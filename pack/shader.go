package pack

import (
	"bytes"
	"fmt"

	"github.com/dawnengine/yage2/asset"
	"github.com/dawnengine/yage2/dawnerr"
)

// decodeShader splits a Shader asset's raw body on
// asset.ShaderSourceSeparator back into its vertex and fragment stages.
// manifest.BuildAssets is the only producer of this wire shape: a Shader
// entry's source and fragment files concatenated at pack time.
func decodeShader(raw []byte) (asset.IR, error) {
	parts := bytes.SplitN(raw, []byte(asset.ShaderSourceSeparator), 2)
	if len(parts) != 2 {
		return nil, dawnerr.New(dawnerr.Decode, "pack.decodeShader",
			fmt.Errorf("missing vertex/fragment stage separator"))
	}

	return asset.IRShader{
		SourcesByStage: map[asset.ShaderStage]string{
			asset.ShaderStageVertex:   string(parts[0]),
			asset.ShaderStageFragment: string(parts[1]),
		},
	}, nil
}
