package columnar

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/colcache/columntype"
	"github.com/arloliu/colcache/endian"
	"github.com/arloliu/colcache/errs"
	"github.com/arloliu/colcache/format"
	"github.com/arloliu/colcache/internal/options"
	"github.com/arloliu/colcache/serde"
)

const defaultInitialRows = 64

// BuilderConfig holds the batch builder settings.
type BuilderConfig struct {
	compression format.CompressionType
	engine      endian.EndianEngine
	resolver    *columntype.Resolver
	registry    *serde.Registry
	initialRows int
	logger      *zap.Logger
}

func newBuilderConfig() *BuilderConfig {
	return &BuilderConfig{
		compression: format.CompressionNone,
		engine:      endian.GetLittleEndianEngine(),
		initialRows: defaultInitialRows,
		logger:      zap.NewNop(),
	}
}

// setCompression sets the codec applied to every column chunk.
func (c *BuilderConfig) setCompression(comp format.CompressionType) error {
	if !comp.IsValid() {
		return fmt.Errorf("invalid column compression: %v", comp)
	}
	c.compression = comp

	return nil
}

// columnResolver returns the configured resolver, creating one over the
// configured registry when needed.
func (c *BuilderConfig) columnResolver() (*columntype.Resolver, error) {
	if c.resolver != nil {
		return c.resolver, nil
	}
	if c.registry == nil {
		return columntype.DefaultResolver(), nil
	}

	return columntype.NewResolver(columntype.WithSerde(c.registry), columntype.WithLogger(c.logger))
}

// BuilderOption is a functional option for configuring BatchBuilder.
type BuilderOption = options.Option[*BuilderConfig]

// WithCompression configures the compression of column chunks.
// Available compression types: format.CompressionZstd, format.CompressionS2,
// format.CompressionLZ4, format.CompressionNone.
// Default is format.CompressionNone.
func WithCompression(comp format.CompressionType) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		return c.setCompression(comp)
	})
}

// WithByteOrder sets the byte order of the column buffers.
// Default is little-endian.
func WithByteOrder(engine endian.EndianEngine) BuilderOption {
	return options.NoError(func(c *BuilderConfig) {
		if engine != nil {
			c.engine = engine
		}
	})
}

// WithLittleEndian encodes column buffers in little-endian byte order.
func WithLittleEndian() BuilderOption {
	return WithByteOrder(endian.GetLittleEndianEngine())
}

// WithBigEndian encodes column buffers in big-endian byte order.
func WithBigEndian() BuilderOption {
	return WithByteOrder(endian.GetBigEndianEngine())
}

// WithResolver sets the resolver used to pick each field's column type.
// It takes precedence over WithSerde.
func WithResolver(r *columntype.Resolver) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		if r == nil {
			return fmt.Errorf("%w: nil resolver", errs.ErrDispatchMiss)
		}
		c.resolver = r

		return nil
	})
}

// WithSerde sets the serialization registry used by generic columns.
func WithSerde(reg *serde.Registry) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		if reg == nil {
			return fmt.Errorf("%w: nil serde registry", errs.ErrDispatchMiss)
		}
		c.registry = reg

		return nil
	})
}

// WithInitialRows sets the number of rows each column buffer is sized for
// before it has to grow. Default is 64.
func WithInitialRows(n int) BuilderOption {
	return options.New(func(c *BuilderConfig) error {
		if n <= 0 {
			return fmt.Errorf("initial rows must be positive, got %d", n)
		}
		c.initialRows = n

		return nil
	})
}

// WithLogger sets the logger used to report built batches.
func WithLogger(logger *zap.Logger) BuilderOption {
	return options.NoError(func(c *BuilderConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}
