// Package connectjson carries plain Go structs over the Connect protocol,
// sparing the wire types a protobuf definition.
package connectjson

import (
	"encoding/json"

	"github.com/bufbuild/connect-go"
)

// Codec is a connect.Codec backed by encoding/json. Both the daemon handlers
// and the CLI client register it so the two ends agree on the codec name.
type Codec struct{}

func (Codec) Name() string {
	return "json"
}

func (Codec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

var _ connect.Codec = (*Codec)(nil)
