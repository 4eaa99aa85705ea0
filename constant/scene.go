package constant

// Logical canvas, mapped onto the terminal by the renderer
const (
	CanvasWidth  = 480.0
	CanvasHeight = 640.0

	// ReelTop is the canvas y of strip coordinate 0
	ReelTop     = 200.0
	ReelSpacing = 140.0
	ReelLeft    = 30.0
)

// Mascots
const MascotCount = 3

// MascotX is the resting x of each mascot
var MascotX = [MascotCount]float64{120, 260, 390}

// Entrance targets per mascot
var (
	MascotStartY    = -150.0
	MascotRestY     = [MascotCount]float64{80, 40, 60}
	MascotRestAlpha = [MascotCount]float64{1, 0.6, 0.5}
	MascotRestScale = [MascotCount]float64{1, 0.7, 0.55}
)
