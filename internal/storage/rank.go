package storage

import "encoding/binary"

// Column weights for relevance, in notes_fts column order.
var ftsColumnWeights = []float64{
	2.0, // title
	1.0, // body
}

// ftsRank scores a row from matchinfo(notes_fts, 'pcx'). For every phrase and
// column it adds weight * (hits in this row / hits in all rows).
func ftsRank(matchinfo []byte) float64 {
	ints := make([]uint32, len(matchinfo)/4)
	for i := range ints {
		ints[i] = binary.NativeEndian.Uint32(matchinfo[i*4:])
	}
	if len(ints) < 2 {
		return 0
	}

	phrases, cols := int(ints[0]), int(ints[1])
	if len(ints) < 2+3*phrases*cols {
		return 0
	}

	var score float64
	for p := 0; p < phrases; p++ {
		for c := 0; c < cols; c++ {
			base := 2 + 3*(p*cols+c)
			hitsRow, hitsAll := ints[base], ints[base+1]
			if hitsRow == 0 || hitsAll == 0 {
				continue
			}
			weight := 1.0
			if c < len(ftsColumnWeights) {
				weight = ftsColumnWeights[c]
			}
			score += weight * float64(hitsRow) / float64(hitsAll)
		}
	}
	return score
}
