package visualization

import "math"

func bounds(positions []Position) (minX, maxX, minY, maxY float64) {
	minX, maxX = math.MaxFloat64, -math.MaxFloat64
	minY, maxY = math.MaxFloat64, -math.MaxFloat64

	for _, pos := range positions {
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxY = math.Max(maxY, pos.Y)
	}
	return minX, maxX, minY, maxY
}

// rescale centers positions on the origin and scales them so the largest
// absolute coordinate equals scale
func rescale(positions []Position, scale float64) {
	if len(positions) == 0 {
		return
	}

	var meanX, meanY float64
	for _, pos := range positions {
		meanX += pos.X
		meanY += pos.Y
	}
	meanX /= float64(len(positions))
	meanY /= float64(len(positions))

	limit := 0.0
	for i := range positions {
		positions[i].X -= meanX
		positions[i].Y -= meanY
		limit = math.Max(limit, math.Max(math.Abs(positions[i].X), math.Abs(positions[i].Y)))
	}

	if limit == 0 {
		return
	}
	for i := range positions {
		positions[i].X *= scale / limit
		positions[i].Y *= scale / limit
	}
}
