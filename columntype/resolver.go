package columntype

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/arloliu/colcache/errs"
	"github.com/arloliu/colcache/internal/options"
	"github.com/arloliu/colcache/serde"
	"github.com/arloliu/colcache/types"
)

// Resolver maps data type descriptors to column types.
//
// Resolution is a pure function of the descriptor: equal descriptors always
// resolve to the same codec. Resolved codecs are cached, and a Resolver is
// safe for concurrent use.
type Resolver struct {
	registry *serde.Registry
	fallback bool
	logger   *zap.Logger
	cache    sync.Map // types.DataType -> ColumnType
}

// ResolverOption configures a Resolver.
type ResolverOption = options.Option[*Resolver]

// WithSerde sets the registry used by generic column types.
func WithSerde(reg *serde.Registry) ResolverOption {
	return options.New(func(r *Resolver) error {
		if reg == nil {
			return fmt.Errorf("%w: nil serde registry", errs.ErrDispatchMiss)
		}
		r.registry = reg

		return nil
	})
}

// WithoutGenericFallback disables the generic codec. Descriptors that need it
// fail to resolve with errs.ErrDispatchMiss.
func WithoutGenericFallback() ResolverOption {
	return options.NoError(func(r *Resolver) {
		r.fallback = false
	})
}

// WithLogger sets the logger used to report resolutions.
func WithLogger(logger *zap.Logger) ResolverOption {
	return options.NoError(func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	})
}

// NewResolver creates a resolver.
//
// Without options the resolver uses serde.Default() for generic column types
// and logs nothing.
func NewResolver(opts ...ResolverOption) (*Resolver, error) {
	r := &Resolver{
		fallback: true,
		logger:   zap.NewNop(),
	}
	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}
	if r.fallback && r.registry == nil {
		r.registry = serde.Default()
	}

	return r, nil
}

// Resolve returns the column type for dt.
//
// Dispatch rules:
//   - boolean, byte, short, int, long, float, double, date, timestamp: native codec
//   - string, binary: length-prefixed codec
//   - decimal(p,s) with p <= 18: 8-byte fixed decimal codec
//   - decimal(p,s) with p > 18, object, array, map: generic codec
//
// Returns errs.ErrInvalidDataType for malformed decimals and
// errs.ErrDispatchMiss for a nil descriptor or when the generic codec is
// needed but disabled.
func (r *Resolver) Resolve(dt types.DataType) (ColumnType, error) {
	if dt == nil {
		return nil, fmt.Errorf("%w: nil data type", errs.ErrDispatchMiss)
	}
	if ct, ok := r.cache.Load(dt); ok {
		return ct.(ColumnType), nil //nolint:forcetypeassert
	}

	ct, err := r.resolve(dt)
	if err != nil {
		return nil, err
	}

	actual, loaded := r.cache.LoadOrStore(dt, ct)
	if !loaded {
		r.logger.Debug("resolved column type",
			zap.Stringer("data_type", dt),
			zap.Stringer("kind", ct.Kind()),
			zap.Int("default_size", ct.DefaultSize()),
		)
	}

	return actual.(ColumnType), nil //nolint:forcetypeassert
}

func (r *Resolver) resolve(dt types.DataType) (ColumnType, error) {
	switch t := dt.(type) {
	case types.BooleanType:
		return Boolean, nil
	case types.ByteType:
		return Byte, nil
	case types.ShortType:
		return Short, nil
	case types.IntegerType:
		return Int, nil
	case types.LongType:
		return Long, nil
	case types.FloatType:
		return Float, nil
	case types.DoubleType:
		return Double, nil
	case types.DateType:
		return Date, nil
	case types.TimestampType:
		return Timestamp, nil
	case types.StringType:
		return String, nil
	case types.BinaryType:
		return Binary, nil
	case types.DecimalType:
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if t.FitsInLong() {
			return NewFixedDecimal(t)
		}

		return r.generic(t)
	case types.ObjectType, types.ArrayType, types.MapType:
		return r.generic(t)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrDispatchMiss, dt)
	}
}

func (r *Resolver) generic(dt types.DataType) (ColumnType, error) {
	if !r.fallback {
		return nil, fmt.Errorf("%w: %s needs the generic column type, which is disabled", errs.ErrDispatchMiss, dt)
	}

	return NewGeneric(dt, r.registry)
}

var (
	defaultResolverOnce sync.Once
	defaultResolver     *Resolver
)

// DefaultResolver returns the process-wide resolver backed by serde.Default().
func DefaultResolver() *Resolver {
	defaultResolverOnce.Do(func() {
		// the default options cannot fail
		defaultResolver, _ = NewResolver()
	})

	return defaultResolver
}

// Resolve resolves dt with the default resolver.
func Resolve(dt types.DataType) (ColumnType, error) {
	return DefaultResolver().Resolve(dt)
}

// ResolveAs resolves dt and asserts the codec's Go value type.
//
// Returns errs.ErrTypeMismatch if dt is not served by a Typed[T] codec, e.g.
// ResolveAs[int64] on an int column.
func ResolveAs[T any](r *Resolver, dt types.DataType) (Typed[T], error) {
	ct, err := r.Resolve(dt)
	if err != nil {
		return nil, err
	}

	typed, ok := ct.(Typed[T])
	if !ok {
		var zero T
		return nil, fmt.Errorf("%w: %s is not served by a %T codec", errs.ErrTypeMismatch, ct, zero)
	}

	return typed, nil
}
