package model

// MaxPortPixels is the per-port pixel ceiling of one controller output.
const MaxPortPixels = 650_000

// PowerDensityWPerM2 is the areal power draw used for feed load
// estimation, in watts per square metre of panel surface.
const PowerDensityWPerM2 = 650.0

// ControllerLimit describes one controller model's pixel ceilings.
// MaxWidth and MaxHeight are independent per-axis pixel limits; zero
// means the model does not check that axis.
type ControllerLimit struct {
	Model     string `json:"model"`
	MaxPixels int    `json:"max_pixels"`
	MaxWidth  int    `json:"max_width,omitempty"`
	MaxHeight int    `json:"max_height,omitempty"`
}

// Controllers is the built-in controller limit table.
var Controllers = []ControllerLimit{
	{Model: "VX400", MaxPixels: 2_600_000},
	{Model: "VX600", MaxPixels: 3_900_000},
	{Model: "VX1000", MaxPixels: 6_500_000, MaxWidth: 10_240, MaxHeight: 8_192},
	{Model: "MCTRL4K", MaxPixels: 8_800_000, MaxWidth: 7_680, MaxHeight: 3_840},
}

// ControllerByModel returns the limit entry for a controller model.
func ControllerByModel(name string) (ControllerLimit, bool) {
	for _, c := range Controllers {
		if c.Model == name {
			return c, true
		}
	}
	return ControllerLimit{}, false
}

// BreakerSafeWatts maps a breaker rating to its continuous safe load in
// watts (80% of rated current at 230 V). Breakers not in the table have
// no enforced limit.
var BreakerSafeWatts = map[string]float64{
	"10A": 1840,
	"13A": 2392,
	"16A": 2944,
	"20A": 3680,
	"32A": 5888,
}
