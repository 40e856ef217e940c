package raster

import (
	"fmt"
	"math"
)

// maxPixelDistance bounds sqrt(3*255^2) ~= 441.67 from above.
const maxPixelDistance = 442

// Score returns the dissimilarity of a and b as a percentage in [0,100]:
// the summed Euclidean RGB distance of every pixel pair, normalized by the
// largest possible per-pixel distance. 0 means identical.
func Score(a, b *Frame) float64 {
	if a.W != b.W || a.H != b.H {
		panic(fmt.Sprintf("raster: score %dx%d against %dx%d", a.W, a.H, b.W, b.H))
	}
	if a.W == 0 || a.H == 0 {
		return 0
	}
	var d float64
	pa, pb := a.Pix, b.Pix[:len(a.Pix)]
	for j := 0; j+2 < len(pa); j += 3 {
		dr := int(pa[j]) - int(pb[j])
		dg := int(pa[j+1]) - int(pb[j+1])
		db := int(pa[j+2]) - int(pb[j+2])
		d += math.Sqrt(float64(dr*dr + dg*dg + db*db))
	}
	return min(100, d/float64(a.W*a.H*maxPixelDistance)*100)
}
