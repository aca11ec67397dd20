package persistence

import (
	"showtimer/internal/persistence/interfaces"
	"showtimer/internal/structures"

	"github.com/fxamacker/cbor/v2"
	json "github.com/goccy/go-json"
)

const (
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

type JSONCodec struct{}

func (JSONCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (JSONCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSONCodec) Name() string                       { return FormatJSON }

type CBORCodec struct{}

func (CBORCodec) Marshal(v any) ([]byte, error)      { return cbor.Marshal(v) }
func (CBORCodec) Unmarshal(data []byte, v any) error { return cbor.Unmarshal(data, v) }
func (CBORCodec) Name() string                       { return FormatCBOR }

func NewCodec(conf *structures.Config) interfaces.CodecInterface {
	if conf.Persistence.Format == FormatCBOR {
		return CBORCodec{}
	}
	return JSONCodec{}
}
