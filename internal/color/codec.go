package color

import (
	"errors"
	"fmt"
)

// The pin-index encoding packs a pin index into the red channel of an
// otherwise fixed teal color: {r: 4*index, g: 0x99, b: 0x99}. Keeping the
// two low red bits zero lets the decoder prove a color came from the
// encoder rather than from real stroke styling.

// MaxPinIndex is the largest encodable pin index (red must stay in 0..255).
const MaxPinIndex = 63

const markerChannel = 0x99

// ErrInvalidColorEncoding is returned when a color was not produced by
// IndexToColor.
var ErrInvalidColorEncoding = errors.New("invalid pin color encoding")

// IndexToColor encodes a pin index as a helper-line color. The caller
// guarantees 0 <= index <= MaxPinIndex.
func IndexToColor(index int) RGB {
	return RGB{R: uint8(index << 2), G: markerChannel, B: markerChannel}
}

// ColorToIndex decodes a helper-line color back into its pin index. It fails
// when the green or blue channel is not 0x99 or the two low red bits are
// nonzero.
func ColorToIndex(c RGB) (int, error) {
	if c.G != markerChannel || c.B != markerChannel || c.R&0x03 != 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidColorEncoding, c)
	}
	return int(c.R >> 2), nil
}
