package represent

import (
	"gonum.org/v1/gonum/floats"
)

// MinMax scales every column of dense rows to [0, 1] in place. Constant columns become 0.
func MinMax(rows [][]float64) {
	if len(rows) == 0 {
		return
	}
	cols := len(rows[0])
	col := make([]float64, len(rows))
	for j := 0; j < cols; j++ {
		for i := range rows {
			col[i] = rows[i][j]
		}
		lo, hi := floats.Min(col), floats.Max(col)
		span := hi - lo
		for i := range rows {
			if span == 0 {
				rows[i][j] = 0
				continue
			}
			rows[i][j] = (rows[i][j] - lo) / span
		}
	}
}
