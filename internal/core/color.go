package core

// Color is the semantic color category of a drawn element. The platform
// layer decides how each category is actually displayed.
type Color uint8

// Color categories for game elements.
const (
	ColorBackground Color = iota
	ColorPaddle
	ColorBall
	ColorBrick
	ColorText
)

// String returns a human-readable name for the color category.
func (c Color) String() string {
	switch c {
	case ColorBackground:
		return "background"
	case ColorPaddle:
		return "paddle"
	case ColorBall:
		return "ball"
	case ColorBrick:
		return "brick"
	case ColorText:
		return "text"
	default:
		return "unknown"
	}
}
