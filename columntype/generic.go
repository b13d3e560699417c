package columntype

import (
	"fmt"

	"github.com/arloliu/colcache/buffer"
	"github.com/arloliu/colcache/errs"
	"github.com/arloliu/colcache/serde"
	"github.com/arloliu/colcache/types"
)

// GenericDefaultSize is the buffer pre-sizing estimate for generic values.
// It bears no relation to real payload sizes; only ActualSize is exact.
const GenericDefaultSize = 16

// genericCodec frames serde payloads like binary values.
type genericCodec struct {
	registry *serde.Registry
}

// NewGeneric returns the fallback codec for dt, marshalling values with reg.
//
// Any Go value registered with reg can be stored. Decimal columns of any
// precision may use it; wide decimals always do.
func NewGeneric(dt types.DataType, reg *serde.Registry) (Typed[any], error) {
	if dt == nil {
		return nil, fmt.Errorf("%w: nil data type", errs.ErrDispatchMiss)
	}
	if reg == nil {
		return nil, fmt.Errorf("%w: generic column type for %s needs a serde registry", errs.ErrDispatchMiss, dt)
	}

	return newColumn[any](dt, KindGeneric, GenericDefaultSize, genericCodec{registry: reg}), nil
}

func (g genericCodec) size(v any) (int, error) {
	payload, err := g.registry.Marshal(v)
	if err != nil {
		return 0, err
	}
	if err := checkPayload(len(payload)); err != nil {
		return 0, err
	}

	return LengthPrefixSize + len(payload), nil
}

// write marshals v exactly once; the length prefix always describes the
// payload that follows it.
func (g genericCodec) write(v any, buf *buffer.Buffer) error {
	payload, err := g.registry.Marshal(v)
	if err != nil {
		return err
	}

	return writeFramed(payload, buf)
}

func (g genericCodec) read(buf *buffer.Buffer) (any, error) {
	payload, err := readPayload(buf)
	if err != nil {
		return nil, err
	}

	return g.registry.Unmarshal(payload)
}
