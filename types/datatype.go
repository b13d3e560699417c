package types

import (
	"fmt"

	"github.com/arloliu/colcache/errs"
)

// Category identifies the family of a DataType.
type Category uint8

const (
	CategoryBoolean   Category = 0x1
	CategoryByte      Category = 0x2
	CategoryShort     Category = 0x3
	CategoryInteger   Category = 0x4
	CategoryLong      Category = 0x5
	CategoryFloat     Category = 0x6
	CategoryDouble    Category = 0x7
	CategoryString    Category = 0x8
	CategoryBinary    Category = 0x9
	CategoryDate      Category = 0xA
	CategoryTimestamp Category = 0xB
	CategoryDecimal   Category = 0xC
	CategoryObject    Category = 0xD
	CategoryArray     Category = 0xE
	CategoryMap       Category = 0xF
)

func (c Category) String() string {
	switch c {
	case CategoryBoolean:
		return "Boolean"
	case CategoryByte:
		return "Byte"
	case CategoryShort:
		return "Short"
	case CategoryInteger:
		return "Integer"
	case CategoryLong:
		return "Long"
	case CategoryFloat:
		return "Float"
	case CategoryDouble:
		return "Double"
	case CategoryString:
		return "String"
	case CategoryBinary:
		return "Binary"
	case CategoryDate:
		return "Date"
	case CategoryTimestamp:
		return "Timestamp"
	case CategoryDecimal:
		return "Decimal"
	case CategoryObject:
		return "Object"
	case CategoryArray:
		return "Array"
	case CategoryMap:
		return "Map"
	default:
		return "Unknown"
	}
}

// MaxLongDigits is the largest decimal precision whose unscaled value always
// fits in an int64. Decimals above it are encoded through the generic path.
const MaxLongDigits = 18

// MaxDecimalPrecision is the largest precision accepted by DecimalType.
const MaxDecimalPrecision = 38

// DataType describes the logical type of a column.
//
// The interface is sealed: only descriptors declared in this package satisfy it.
type DataType interface {
	// Category returns the family of the data type.
	Category() Category
	// String returns a human readable name, e.g. "decimal(15,10)".
	String() string

	sealed()
}

type (
	BooleanType   struct{}
	ByteType      struct{}
	ShortType     struct{}
	IntegerType   struct{}
	LongType      struct{}
	FloatType     struct{}
	DoubleType    struct{}
	StringType    struct{}
	BinaryType    struct{}
	DateType      struct{}
	TimestampType struct{}
)

// DecimalType is a fixed-point decimal with the given precision (total number
// of digits) and scale (digits after the decimal point).
type DecimalType struct {
	Precision int
	Scale     int
}

// ObjectType is an arbitrary Go value without a native codec. Name is purely
// descriptive and distinguishes object columns from each other.
type ObjectType struct {
	Name string
}

// ArrayType is a sequence of Elem values.
type ArrayType struct {
	Elem DataType
}

// MapType maps Key values to Value values.
type MapType struct {
	Key   DataType
	Value DataType
}

// Singleton descriptors for the parameterless types.
var (
	Boolean   = BooleanType{}
	Byte      = ByteType{}
	Short     = ShortType{}
	Integer   = IntegerType{}
	Long      = LongType{}
	Float     = FloatType{}
	Double    = DoubleType{}
	String    = StringType{}
	Binary    = BinaryType{}
	Date      = DateType{}
	Timestamp = TimestampType{}
)

// DecimalOf returns the decimal descriptor for precision p and scale s.
func DecimalOf(p, s int) DecimalType {
	return DecimalType{Precision: p, Scale: s}
}

// Object returns an object descriptor with the given descriptive name.
func Object(name string) ObjectType {
	return ObjectType{Name: name}
}

// ArrayOf returns an array descriptor of elem values.
func ArrayOf(elem DataType) ArrayType {
	return ArrayType{Elem: elem}
}

// MapOf returns a map descriptor from key to value.
func MapOf(key, value DataType) MapType {
	return MapType{Key: key, Value: value}
}

func (BooleanType) Category() Category   { return CategoryBoolean }
func (ByteType) Category() Category      { return CategoryByte }
func (ShortType) Category() Category     { return CategoryShort }
func (IntegerType) Category() Category   { return CategoryInteger }
func (LongType) Category() Category      { return CategoryLong }
func (FloatType) Category() Category     { return CategoryFloat }
func (DoubleType) Category() Category    { return CategoryDouble }
func (StringType) Category() Category    { return CategoryString }
func (BinaryType) Category() Category    { return CategoryBinary }
func (DateType) Category() Category      { return CategoryDate }
func (TimestampType) Category() Category { return CategoryTimestamp }
func (DecimalType) Category() Category   { return CategoryDecimal }
func (ObjectType) Category() Category    { return CategoryObject }
func (ArrayType) Category() Category     { return CategoryArray }
func (MapType) Category() Category       { return CategoryMap }

func (BooleanType) String() string   { return "boolean" }
func (ByteType) String() string      { return "byte" }
func (ShortType) String() string     { return "short" }
func (IntegerType) String() string   { return "int" }
func (LongType) String() string      { return "long" }
func (FloatType) String() string     { return "float" }
func (DoubleType) String() string    { return "double" }
func (StringType) String() string    { return "string" }
func (BinaryType) String() string    { return "binary" }
func (DateType) String() string      { return "date" }
func (TimestampType) String() string { return "timestamp" }

func (d DecimalType) String() string {
	return fmt.Sprintf("decimal(%d,%d)", d.Precision, d.Scale)
}

func (o ObjectType) String() string {
	if o.Name == "" {
		return "object"
	}

	return "object<" + o.Name + ">"
}

func (a ArrayType) String() string {
	return "array<" + nameOf(a.Elem) + ">"
}

func (m MapType) String() string {
	return "map<" + nameOf(m.Key) + "," + nameOf(m.Value) + ">"
}

func nameOf(dt DataType) string {
	if dt == nil {
		return "?"
	}

	return dt.String()
}

func (BooleanType) sealed()   {}
func (ByteType) sealed()      {}
func (ShortType) sealed()     {}
func (IntegerType) sealed()   {}
func (LongType) sealed()      {}
func (FloatType) sealed()     {}
func (DoubleType) sealed()    {}
func (StringType) sealed()    {}
func (BinaryType) sealed()    {}
func (DateType) sealed()      {}
func (TimestampType) sealed() {}
func (DecimalType) sealed()   {}
func (ObjectType) sealed()    {}
func (ArrayType) sealed()     {}
func (MapType) sealed()       {}

// Validate reports whether the decimal descriptor is well formed:
// 0 <= scale <= precision <= MaxDecimalPrecision.
func (d DecimalType) Validate() error {
	if d.Precision < 0 || d.Precision > MaxDecimalPrecision {
		return fmt.Errorf("%w: decimal precision %d outside [0, %d]", errs.ErrInvalidDataType, d.Precision, MaxDecimalPrecision)
	}
	if d.Scale < 0 || d.Scale > d.Precision {
		return fmt.Errorf("%w: decimal scale %d outside [0, %d]", errs.ErrInvalidDataType, d.Scale, d.Precision)
	}

	return nil
}

// FitsInLong reports whether every value of this decimal type can be held as
// an int64 unscaled value.
func (d DecimalType) FitsInLong() bool {
	return d.Precision <= MaxLongDigits
}

// IsFixedWidth reports whether values of dt always occupy the same number of
// bytes when encoded by their native column type.
func IsFixedWidth(dt DataType) bool {
	switch t := dt.(type) {
	case BooleanType, ByteType, ShortType, IntegerType, LongType,
		FloatType, DoubleType, DateType, TimestampType:
		return true
	case DecimalType:
		return t.FitsInLong()
	default:
		return false
	}
}
