package corpus

import (
	hmm "github.com/unixpickle/discrete-hmm"
)

// darkThreshold is the brightness below which a pixel
// counts as ink.
const darkThreshold = 100

// Zone converts an image into a sequence of zones*zones
// symbols in the range [0, shades).
//
// The image is cropped to the bounding box of its dark
// pixels and area-averaged down to a zones x zones grid.
// The averages are then quantized into shades buckets,
// scaled by the brightest zone.
// Symbols are emitted row by row.
func Zone(img Image, zones, shades int) []hmm.Obs {
	if zones <= 0 || shades <= 0 || img.Width == 0 || img.Height == 0 {
		return nil
	}
	minX, minY, maxX, maxY := darkBounds(img)

	cropW, cropH := maxX-minX+1, maxY-minY+1
	averages := make([]float64, zones*zones)
	var upper float64
	for zy := 0; zy < zones; zy++ {
		y0, y1 := zoneSpan(zy, zones, cropH)
		for zx := 0; zx < zones; zx++ {
			x0, x1 := zoneSpan(zx, zones, cropW)
			var sum float64
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					sum += float64(img.At(minX+x, minY+y))
				}
			}
			avg := sum / float64((y1-y0)*(x1-x0))
			averages[zy*zones+zx] = avg
			if avg > upper {
				upper = avg
			}
		}
	}

	step := (upper + 1) / float64(shades)
	res := make([]hmm.Obs, len(averages))
	for i, avg := range averages {
		res[i] = min(int(avg/step), shades-1)
	}
	return res
}

// darkBounds finds the inclusive bounding box of the
// dark pixels, or the whole image if there are none.
func darkBounds(img Image) (minX, minY, maxX, maxY int) {
	minX, minY = img.Width, img.Height
	maxX, maxY = -1, -1
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if img.At(x, y) < darkThreshold {
				minX, maxX = min(minX, x), max(maxX, x)
				minY, maxY = min(minY, y), max(maxY, y)
			}
		}
	}
	if maxX < 0 {
		return 0, 0, img.Width - 1, img.Height - 1
	}
	return
}

// zoneSpan returns the half-open range of source pixels
// covered by zone i out of n along a side of length size.
// Every zone covers at least one pixel.
func zoneSpan(i, n, size int) (int, int) {
	start := i * size / n
	end := (i + 1) * size / n
	if end <= start {
		end = start + 1
	}
	if end > size {
		start, end = size-1, size
	}
	return start, end
}
