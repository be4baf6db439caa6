package tripapiconnect

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// codecNameJSON replaces connect's protojson codec, which only accepts
// generated protobuf messages.
const codecNameJSON = "json"

type jsonCodec struct{}

var _ connect.Codec = jsonCodec{}

func (jsonCodec) Name() string { return codecNameJSON }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

// withJSON is applied to every handler and client in this package.
func withJSON() connect.Option {
	return connect.WithCodec(jsonCodec{})
}
