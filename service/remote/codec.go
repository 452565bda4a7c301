package remote

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes requests and decodes responses.
type Codec interface {
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v *any) error
}

// CodecFor returns the codec registered under name ("" means json).
func CodecFor(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return jsonCodec{}, nil
	case "msgpack":
		return msgpackCodec{}, nil
	default:
		return nil, fmt.Errorf("invalid codec: %q (must be json or msgpack)", name)
	}
}

type jsonCodec struct{}

func (jsonCodec) ContentType() string { return "application/json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v *any) error { return json.Unmarshal(data, v) }

type msgpackCodec struct{}

func (msgpackCodec) ContentType() string { return "application/msgpack" }

func (msgpackCodec) Marshal(v any) ([]byte, error) { return msgpack.Marshal(v) }

func (msgpackCodec) Unmarshal(data []byte, v *any) error { return msgpack.Unmarshal(data, v) }
