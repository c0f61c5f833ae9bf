package draw

// Color is an ANSI 256-color palette index. The zero value is transparent.
type Color uint8

// None leaves a pixel empty.
const None Color = 0

// Game palette, approximated from a Nord-like scheme onto the 256-color cube.
const (
	Primary      Color = 204
	PrimaryLight Color = 203
	Accent       Color = 110
	AccentLight  Color = 109
	Gold         Color = 222
	Green        Color = 150
	Purple       Color = 139
	Red          Color = 167
	Orange       Color = 173
	White        Color = 255
	Gray         Color = 240
	DarkGray     Color = 237
	Steel        Color = 245
	Flame        Color = 208
)
