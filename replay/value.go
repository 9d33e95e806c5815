package replay

import "math"

// CounterValue is a counter result. The engine reports results untagged;
// the concrete type is picked from the counter's descriptor when the result
// is decoded, see DecodeValue.
type CounterValue interface {
	isCounterValue()
}

// FloatValue is a floating point result.
type FloatValue float64

// U32Value is a 32-bit integer result.
type U32Value uint32

// U64Value is a 64-bit integer result.
type U64Value uint64

func (FloatValue) isCounterValue() {}
func (U32Value) isCounterValue() {}
func (U64Value) isCounterValue() {}

// AsFloat reads v as a float.
func AsFloat(v CounterValue) float64 {
	switch v := v.(type) {
	case FloatValue:
		return float64(v)
	case U32Value:
		return float64(v)
	case U64Value:
		return float64(v)
	}
	return 0
}

// AsUint32 reads v as a 32-bit unsigned integer, truncating wider values.
func AsUint32(v CounterValue) uint32 {
	return uint32(AsUint64(v))
}

// AsUint64 reads v as a 64-bit unsigned integer.
func AsUint64(v CounterValue) uint64 {
	switch v := v.(type) {
	case FloatValue:
		return floatToUint(float64(v))
	case U32Value:
		return uint64(v)
	case U64Value:
		return uint64(v)
	}
	return 0
}

// RawValue is a result as it comes out of the engine, before the descriptor
// gives it a type.
type RawValue struct {
	Bits    uint64
	Float   float64
	IsFloat bool
}

func (r RawValue) uint() uint64 {
	if r.IsFloat {
		return floatToUint(r.Float)
	}
	return r.Bits
}

func (r RawValue) float() float64 {
	if r.IsFloat {
		return r.Float
	}
	return float64(r.Bits)
}

// DecodeValue builds the CounterValue for raw according to the result type
// and byte width of desc.
func DecodeValue(desc CounterDescriptor, raw RawValue) CounterValue {
	switch {
	case desc.ResultType == Float || desc.ResultType == Double:
		if desc.ResultByteWidth == 4 {
			return FloatValue(float32(raw.float()))
		}
		return FloatValue(raw.float())
	case desc.ResultType.IsInteger():
		if desc.ResultByteWidth == 4 {
			return U32Value(uint32(raw.uint()))
		}
		return U64Value(raw.uint())
	case raw.IsFloat:
		return FloatValue(raw.Float)
	}
	return U64Value(raw.Bits)
}

func floatToUint(f float64) uint64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f < 0:
		return uint64(int64(f))
	case f >= math.MaxUint64:
		return math.MaxUint64
	}
	return uint64(f)
}
