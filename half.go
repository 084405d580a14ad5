package planar

import "math"

func halfToFloat32(h uint16) float32 {
	sign := uint32(h>>15) & 0x1
	exp := int32(h>>10) & 0x1F
	mant := int32(h & 0x03FF)

	if exp == 0 {
		if mant == 0 {
			return math.Float32frombits(sign << 31)
		}
		for mant&0x0400 == 0 {
			mant <<= 1
			exp--
		}
		exp++
		mant &= 0x03FF
	} else if exp == 31 {
		if mant == 0 {
			return math.Float32frombits((sign << 31) | 0x7F800000)
		}
		return math.Float32frombits((sign << 31) | 0x7FC00000 | (uint32(mant) << 13))
	}

	exp += 127 - 15
	bits := (sign << 31) | (uint32(exp) << 23) | uint32(mant<<13)
	return math.Float32frombits(bits)
}

// float32ToHalf rounds to nearest even and saturates overflow to infinity.
func float32ToHalf(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16(bits>>16) & 0x8000
	exp := int32(bits>>23)&0xFF - 127 + 15
	mant := bits & 0x007FFFFF

	switch {
	case exp >= 31:
		if int32(bits>>23)&0xFF == 0xFF {
			if mant != 0 {
				return sign | 0x7E00
			}
			return sign | 0x7C00
		}
		// Finite overflow saturates to infinity.
		return sign | 0x7C00
	case exp <= 0:
		if exp < -10 {
			return sign
		}
		// Denormal: shift in the implicit leading bit, round to nearest even.
		mant |= 0x00800000
		shift := uint32(14 - exp)
		half := uint16(mant >> shift)
		round := mant & (1<<shift - 1)
		mid := uint32(1) << (shift - 1)
		if round > mid || (round == mid && half&1 != 0) {
			half++
		}
		return sign | half
	default:
		half := sign | uint16(exp<<10) | uint16(mant>>13)
		round := mant & 0x1FFF
		if round > 0x1000 || (round == 0x1000 && half&1 != 0) {
			half++ // carries into the exponent correctly
		}
		return half
	}
}
