package flowshop

import (
	"errors"
	"fmt"
	"math/rand"
)

// ValidatePermutation проверяет, что perm - перестановка {1..n}.
func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("permutation length must be %d (got %d)", n, len(perm))
	}
	seen := make([]bool, n+1)
	for i, v := range perm {
		if v < 1 || v > n {
			return fmt.Errorf("perm[%d]=%d out of range [1,%d]", i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("duplicate job id %d in permutation", v)
		}
		seen[v] = true
	}
	return nil
}

// IdentityPermutation возвращает [1, 2, ..., n].
func IdentityPermutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i + 1
	}
	return p
}

// RandomPermutation - случайный порядок работ 1..n (Фишер-Йетс).
func RandomPermutation(n int, rng *rand.Rand) ([]int, error) {
	if rng == nil {
		return nil, errors.New("генератор случайных чисел не инициализирован (nil)")
	}
	p := IdentityPermutation(n)
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p, nil
}
