package flowshop

import "fmt"

func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("%w: permutation length must be %d (got %d)", ErrInvalidInput, n, len(perm))
	}
	seen := make([]bool, n)
	for i, v := range perm {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: perm[%d]=%d out of range [0,%d)", ErrInvalidInput, i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate job id %d in permutation", ErrInvalidInput, v)
		}
		seen[v] = true
	}
	return nil
}

// Identity возвращает перестановку [0, 1, ..., n-1] (порядок поступления работ).
func Identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Reverse возвращает новую перестановку в обратном порядке.
func Reverse(perm []int) []int {
	out := make([]int, len(perm))
	for i, v := range perm {
		out[len(perm)-1-i] = v
	}
	return out
}
