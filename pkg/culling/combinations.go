package culling

import "iter"

// Combinations yields every k sized subset of [0, n) as increasing indexes, in
// colexicographic order (Knuth, TAOCP 7.2.1.3, algorithm L). The yielded slice
// is reused between iterations.
func Combinations(n int, k int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k < 0 || k > n {
			return
		}
		if k == 0 {
			yield([]int{})
			return
		}

		c := make([]int, k+2)
		for i := 0; i < k; i++ {
			c[i] = i
		}
		c[k] = n
		c[k+1] = 0

		for {
			if !yield(c[:k]) {
				return
			}

			j := 0
			for c[j]+1 == c[j+1] {
				c[j] = j
				j++
			}
			if j >= k {
				return
			}
			c[j]++
		}
	}
}

// Binomial gives C(n, k), or limit+1 as soon as the value goes over limit
func Binomial(n int, k int, limit int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}

	result := 1
	for i := 1; i <= k; i++ {
		// C(n-k+i, i) = C(n-k+i-1, i-1) * (n-k+i) / i is always an integer
		result = result * (n - k + i) / i
		if result > limit {
			return limit + 1
		}
	}
	return result
}
