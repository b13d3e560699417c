package serde

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	gojson "github.com/goccy/go-json"

	"github.com/arloliu/colcache/endian"
	"github.com/arloliu/colcache/errs"
)

const (
	tagNil        = 0x00
	tagReflective = 0x01
	tagCustom     = 0x02
)

type entry struct {
	typ    reflect.Type
	name   string
	custom bool
	id     uint16
	encode func(any) ([]byte, error)
	decode func([]byte) (any, error)
}

// Registry maps Go types to their marshallers.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*entry
	byName map[string]*entry
	byID   map[uint16]*entry
	used   sync.Map // reflect.Type -> struct{}
	engine endian.EndianEngine
}

// NewRegistry returns a registry with the builtin scalar, slice and map types
// and the colcache value types already registered for reflective marshalling.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	for _, sample := range builtinSamples() {
		// builtin samples are always serializable
		_ = r.RegisterType(sample)
	}
	_ = registerSerializer(r, timeID, encodeTime, decodeTime)

	return r
}

// NewEmptyRegistry returns a registry that knows no types at all.
func NewEmptyRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]*entry),
		byName: make(map[string]*entry),
		byID:   make(map[uint16]*entry),
		engine: endian.GetLittleEndianEngine(),
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns a process-wide registry created by NewRegistry on first use.
//
// It is shared by every caller that asks for it; libraries should prefer
// building their own registry with NewRegistry and injecting it.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})

	return defaultRegistry
}

// Register makes T known to the reflective marshaller of r.
func Register[T any](r *Registry) error {
	return r.register(reflect.TypeFor[T]())
}

// RegisterType makes the dynamic type of sample known to the reflective marshaller.
// Registering a type twice is a no-op.
func (r *Registry) RegisterType(sample any) error {
	if sample == nil {
		return fmt.Errorf("%w: cannot register untyped nil", errs.ErrUnregisteredType)
	}

	return r.register(reflect.TypeOf(sample))
}

func (r *Registry) register(t reflect.Type) error {
	if err := checkReflective(t); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byType[t]; ok {
		return nil
	}

	e := &entry{typ: t, name: typeName(t)}
	if other, ok := r.byName[e.name]; ok && other.typ != t {
		return fmt.Errorf("%w: type name %q already used by %v", errs.ErrDuplicateSerializer, e.name, other.typ)
	}
	r.byType[t] = e
	r.byName[e.name] = e

	return nil
}

// RegisterSerializer installs a dedicated serializer for T under id.
//
// The serializer must be registered before any value of T is marshalled or
// unmarshalled by r. The id is written into every payload instead of the type
// name, so ids must be unique within a registry.
//
// Parameters:
//   - r: Registry to install the serializer in
//   - id: Serializer id stored in payloads
//   - enc: Encodes a T into its dedicated byte representation
//   - dec: Decodes bytes produced by enc
//
// Returns:
//   - error: errs.ErrLateRegistration if T was already used,
//     errs.ErrDuplicateSerializer if id or T already has a dedicated serializer
//     or id is ReservedIDStart or above
func RegisterSerializer[T any](r *Registry, id uint16, enc func(T) ([]byte, error), dec func([]byte) (T, error)) error {
	if id >= ReservedIDStart {
		return fmt.Errorf("%w: id %d is reserved for builtin serializers", errs.ErrDuplicateSerializer, id)
	}

	return registerSerializer(r, id, enc, dec)
}

func registerSerializer[T any](r *Registry, id uint16, enc func(T) ([]byte, error), dec func([]byte) (T, error)) error {
	if enc == nil || dec == nil {
		return fmt.Errorf("%w: serializer functions must not be nil", errs.ErrUnregisteredType)
	}

	t := reflect.TypeFor[T]()
	if err := checkKind(t); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, used := r.used.Load(t); used {
		return fmt.Errorf("%w: %v", errs.ErrLateRegistration, t)
	}
	if other, ok := r.byID[id]; ok {
		return fmt.Errorf("%w: id %d already used by %v", errs.ErrDuplicateSerializer, id, other.typ)
	}
	if existing, ok := r.byType[t]; ok && existing.custom {
		return fmt.Errorf("%w: %v already has serializer %d", errs.ErrDuplicateSerializer, t, existing.id)
	}

	e := &entry{
		typ:    t,
		name:   typeName(t),
		custom: true,
		id:     id,
		encode: func(v any) ([]byte, error) {
			typed, ok := v.(T)
			if !ok {
				return nil, fmt.Errorf("%w: serializer %d got %T", errs.ErrTypeMismatch, id, v)
			}

			return enc(typed)
		},
		decode: func(b []byte) (any, error) {
			return dec(b)
		},
	}
	r.byType[t] = e
	r.byName[e.name] = e
	r.byID[id] = e

	return nil
}

// IsRegistered reports whether values of t can be marshalled by r.
func (r *Registry) IsRegistered(t reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byType[t]

	return ok
}

// Marshal encodes v into a self-describing byte sequence.
//
// Returns errs.ErrUnregisteredType for unknown types; errors raised by the
// JSON encoder or a dedicated serializer are returned wrapped.
func (r *Registry) Marshal(v any) ([]byte, error) {
	if v == nil {
		return []byte{tagNil}, nil
	}

	t := reflect.TypeOf(v)
	e, err := r.acquireType(t)
	if err != nil {
		return nil, err
	}

	if e.custom {
		payload, err := e.encode(v)
		if err != nil {
			return nil, fmt.Errorf("serializer %d encode %v: %w", e.id, t, err)
		}

		out := make([]byte, 0, 3+len(payload))
		out = append(out, tagCustom)
		out = r.engine.AppendUint16(out, e.id)

		return append(out, payload...), nil
	}

	payload, err := gojson.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %v: %w", t, err)
	}

	out := make([]byte, 0, 1+binary.MaxVarintLen64+len(e.name)+len(payload))
	out = append(out, tagReflective)
	out = binary.AppendUvarint(out, uint64(len(e.name)))
	out = append(out, e.name...)

	return append(out, payload...), nil
}

// Unmarshal decodes bytes produced by Marshal.
func (r *Registry) Unmarshal(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", errs.ErrCorruptPayload)
	}

	switch data[0] {
	case tagNil:
		if len(data) != 1 {
			return nil, fmt.Errorf("%w: trailing bytes after nil tag", errs.ErrCorruptPayload)
		}

		return nil, nil
	case tagReflective:
		return r.unmarshalReflective(data[1:])
	case tagCustom:
		return r.unmarshalCustom(data[1:])
	default:
		return nil, fmt.Errorf("%w: unknown tag 0x%02x", errs.ErrCorruptPayload, data[0])
	}
}

func (r *Registry) unmarshalReflective(data []byte) (any, error) {
	nameLen, n := binary.Uvarint(data)
	if n <= 0 || nameLen > uint64(len(data)-n) {
		return nil, fmt.Errorf("%w: bad type name length", errs.ErrCorruptPayload)
	}
	name := string(data[n : n+int(nameLen)]) //nolint:gosec
	payload := data[n+int(nameLen):]         //nolint:gosec

	r.mu.RLock()
	e, ok := r.byName[name]
	if ok {
		r.used.Store(e.typ, struct{}{})
	}
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnregisteredType, name)
	}
	if e.custom {
		return nil, fmt.Errorf("%w: %v is not marshalled reflectively", errs.ErrCorruptPayload, e.typ)
	}

	ptr := reflect.New(e.typ)
	if err := gojson.Unmarshal(payload, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("%w: unmarshal %v: %w", errs.ErrCorruptPayload, e.typ, err)
	}

	return ptr.Elem().Interface(), nil
}

func (r *Registry) unmarshalCustom(data []byte) (any, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("%w: missing serializer id", errs.ErrCorruptPayload)
	}
	id := r.engine.Uint16(data)

	r.mu.RLock()
	e, ok := r.byID[id]
	if ok {
		r.used.Store(e.typ, struct{}{})
	}
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: serializer id %d", errs.ErrUnregisteredType, id)
	}

	v, err := e.decode(data[2:])
	if err != nil {
		return nil, fmt.Errorf("serializer %d decode %v: %w", id, e.typ, err)
	}

	return v, nil
}

// acquireType returns the entry of t and marks t as used. Both happen under
// the read lock, so RegisterSerializer either runs before the lookup or sees
// the mark.
func (r *Registry) acquireType(t reflect.Type) (*entry, error) {
	r.mu.RLock()
	e, ok := r.byType[t]
	if ok {
		r.used.Store(t, struct{}{})
	}
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %v", errs.ErrUnregisteredType, t)
	}

	return e, nil
}

// typeName returns a stable, package qualified name for t.
func typeName(t reflect.Type) string {
	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}

	return t.String()
}
