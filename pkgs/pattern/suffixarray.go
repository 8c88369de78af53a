package pattern

import "sort"

// buildSuffixArray builds a suffix array over ranks using the doubling
// algorithm of spec.md section 4.9: each round doubles the comparison
// window and re-ranks suffixes via a radix-style (rank, rank-at-offset)
// key, terminating early once every suffix has a distinct rank.
func buildSuffixArray(ranks []int) []int {
	n := len(ranks)
	sa := make([]int, n)
	rank := make([]int, n)
	tmp := make([]int, n)

	for i := 0; i < n; i++ {
		sa[i] = i
		rank[i] = ranks[i]
	}

	keyAt := func(i, k int) int {
		if i+k >= n {
			return -1
		}
		return rank[i+k]
	}

	for k := 1; k < n; k *= 2 {
		sort.Slice(sa, func(a, b int) bool {
			i, j := sa[a], sa[b]
			if rank[i] != rank[j] {
				return rank[i] < rank[j]
			}
			return keyAt(i, k) < keyAt(j, k)
		})

		tmp[sa[0]] = 0
		distinct := 1
		for i := 1; i < n; i++ {
			prev, cur := sa[i-1], sa[i]
			same := rank[prev] == rank[cur] && keyAt(prev, k) == keyAt(cur, k)
			if !same {
				distinct++
			}
			tmp[cur] = tmp[prev]
			if !same {
				tmp[cur]++
			}
		}
		copy(rank, tmp)

		if distinct == n {
			break
		}
	}

	return sa
}

// buildLCP computes the LCP array via Kasai's O(n) algorithm: lcp[i] is
// the length of the longest common prefix between the suffixes at
// ranks i-1 and i in sa; lcp[0] is always 0 and unused.
func buildLCP(ranks []int, sa []int) []int {
	n := len(ranks)
	lcp := make([]int, n)
	if n == 0 {
		return lcp
	}

	rankOf := make([]int, n)
	for i, suf := range sa {
		rankOf[suf] = i
	}

	h := 0
	for i := 0; i < n; i++ {
		if rankOf[i] == 0 {
			h = 0
			continue
		}
		j := sa[rankOf[i]-1]
		for i+h < n && j+h < n && ranks[i+h] == ranks[j+h] {
			h++
		}
		lcp[rankOf[i]] = h
		if h > 0 {
			h--
		}
	}
	return lcp
}
