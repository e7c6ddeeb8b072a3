package coord

// Coordinates are packed into a single int32: x in the upper 16 bits, y in the
// lower 16 bits. Every component in [-32768, 32767] round-trips; values outside
// that range are truncated to their low 16 bits.
const (
	MinValue = -32767
	MaxValue = 32767
)

// Encode packs (x, y) into one key.
func Encode(x, y int) int32 {
	return int32(uint32(x)<<16 | uint32(y)&0xFFFF)
}

// DecodeX extracts the x component of an encoded key.
func DecodeX(key int32) int {
	return int(key >> 16)
}

// DecodeY extracts the y component of an encoded key.
func DecodeY(key int32) int {
	return int(int16(key))
}

// Decode unpacks a key into (x, y).
func Decode(key int32) (int, int) {
	return DecodeX(key), DecodeY(key)
}

// InRange reports whether both components survive Encode unchanged.
func InRange(x, y int) bool {
	return x >= MinValue && x <= MaxValue && y >= MinValue && y <= MaxValue
}
