// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// FloatToInt16 converts a normalized sample to 16-bit PCM as
// round(x * 32767), saturated to the int16 range.
func FloatToInt16(x float64) int16 {
	v := math.Round(x * 32767.0)

	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	if v != v {
		return 0
	}

	return int16(v)
}
