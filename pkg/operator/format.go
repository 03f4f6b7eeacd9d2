package operator

import "strconv"

func trimInt(n float64) string {
	return strconv.FormatInt(int64(n), 10)
}

func trimFloat(n float64) string {
	return strconv.FormatFloat(n, 'g', -1, 64)
}
