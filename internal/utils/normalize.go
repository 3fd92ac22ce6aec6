package utils

// Ranks numbers n ordered entries from 1.
func Ranks(n int) []uint16 {
	ranks := make([]uint16, max(n, 0))
	for i := range ranks {
		ranks[i] = uint16(i + 1)
	}
	return ranks
}
