package draw

// Shape outlines in unit coordinates, nose pointing along +X.
// Scale them with Transform to the entity size and heading.

// Missile is the player's body: a pointed nose, a slim fuselage and tail fins.
var Missile = []Point{
	{X: 0.5, Y: 0},
	{X: 0.25, Y: -0.1},
	{X: -0.3, Y: -0.1},
	{X: -0.5, Y: -0.25},
	{X: -0.45, Y: 0},
	{X: -0.5, Y: 0.25},
	{X: -0.3, Y: 0.1},
	{X: 0.25, Y: 0.1},
}

// Plane is the odd-level boss body: swept wings around a long fuselage.
var Plane = []Point{
	{X: 0.5, Y: 0},
	{X: 0.3, Y: -0.08},
	{X: 0.05, Y: -0.5},
	{X: -0.1, Y: -0.5},
	{X: -0.05, Y: -0.1},
	{X: -0.35, Y: -0.1},
	{X: -0.5, Y: -0.25},
	{X: -0.45, Y: 0},
	{X: -0.5, Y: 0.25},
	{X: -0.35, Y: 0.1},
	{X: -0.05, Y: 0.1},
	{X: -0.1, Y: 0.5},
	{X: 0.05, Y: 0.5},
	{X: 0.3, Y: 0.08},
}

// Helicopter is the even-level boss body: a round cabin and a tail boom.
var Helicopter = []Point{
	{X: 0.35, Y: 0},
	{X: 0.25, Y: -0.2},
	{X: 0, Y: -0.28},
	{X: -0.2, Y: -0.18},
	{X: -0.5, Y: -0.04},
	{X: -0.5, Y: 0.04},
	{X: -0.2, Y: 0.18},
	{X: 0, Y: 0.28},
	{X: 0.25, Y: 0.2},
}

// Rotor is a single helicopter blade, drawn twice at right angles.
var Rotor = []Point{
	{X: -0.55, Y: -0.03},
	{X: 0.55, Y: -0.03},
	{X: 0.55, Y: 0.03},
	{X: -0.55, Y: 0.03},
}
