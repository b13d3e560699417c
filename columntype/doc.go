// Package columntype implements the per-data-type codecs that pack row values
// into column buffers and read them back.
//
// A ColumnType is bound to one logical data type. It knows how many bytes a
// value needs (DefaultSize as an estimate, ActualSize exactly), how to append a
// value at the buffer cursor, and how to extract it again using the same
// layout. Column types are immutable and safe for concurrent use; the buffers
// and rows they operate on are not.
//
// # Layouts
//
// Fixed-width types always occupy DefaultSize bytes:
//
//	boolean    1  0x01 or 0x00
//	byte       1  raw
//	short      2  int16
//	int        4  int32
//	long       8  int64
//	float      4  IEEE-754 binary32
//	double     8  IEEE-754 binary64
//	date       4  int32 days since 1970-01-01
//	timestamp  8  int64 microseconds since the Unix epoch
//	decimal    8  int64 unscaled value (precision <= 18)
//
// Variable-width types are length prefixed:
//
//	string     [uint32 byte length][UTF-8 bytes]   DefaultSize 8
//	binary     [uint32 byte length][bytes]         DefaultSize 16
//	generic    [uint32 byte length][serde payload] DefaultSize 16
//
// Multi-byte values use the byte order of the buffer. Precision and scale of
// decimals and the data type of every column are not stored in the buffer;
// the reader must resolve the same column types in the same order.
//
// # Dispatch
//
// A Resolver maps a types.DataType to its ColumnType. Decimals with precision
// up to types.MaxLongDigits use the 8-byte fixed codec; wider decimals, objects,
// arrays and maps use the generic codec backed by a serde.Registry.
package columntype
