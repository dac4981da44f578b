package quant

// Rank sorts the histogram in place by descending count. It is a Shell
// sort and not stable: colours with equal counts end up in any order.
func (h Histogram) Rank() {
	n := len(h)
	gap := 1
	for gap < n {
		gap += gap
	}
	// 2^k-1 increments stay relatively prime (Knuth vol 3, p. 91).
	gap = (gap - 1) >> 1
	if gap == 0 && n > 1 {
		gap = 1
	}
	for ; gap > 0; gap >>= 1 {
		for j := 0; j < n-gap; j++ {
			for i := j; ; i -= gap {
				l := i + gap
				if h[i].Count >= h[l].Count {
					break
				}
				h[i], h[l] = h[l], h[i]
				if i < gap {
					break
				}
			}
		}
	}
}
