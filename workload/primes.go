package workload

import "math"

// Trial division by 6k±1 for all 6k-1 <= sqrt(n).
// Second value is false when primality is undefined (0 and 1).
func IsPrimeV1(n uint64) (bool, bool) {
	if n == 0 || n == 1 {
		return false, false
	}
	if n == 2 || n == 3 {
		return true, true
	}
	if n%2 == 0 || n%3 == 0 {
		return false, true
	}

	limit := uint64(math.Ceil(math.Sqrt(float64(n)))) + 2
	for i := uint64(6); i < limit; i += 6 {
		if n%(i-1) == 0 || n%(i+1) == 0 {
			return false, true
		}
	}
	return true, true
}

// Same as IsPrimeV1 with one addition less per loop step. The difference is
// small enough to test whether a benchmark can detect it.
func IsPrimeV2(n uint64) (bool, bool) {
	if n == 0 || n == 1 {
		return false, false
	}
	if n == 2 || n == 3 {
		return true, true
	}
	if n%2 == 0 || n%3 == 0 {
		return false, true
	}

	limit := uint64(math.Ceil(math.Sqrt(float64(n)))) + 1
	for i := uint64(5); i < limit; i += 6 {
		if n%i == 0 || n%(i+2) == 0 {
			return false, true
		}
	}
	return true, true
}

// Number of primes in [2, n)
func CountPrimes(n uint64, isPrime func(uint64) (bool, bool)) uint64 {
	var count uint64
	for i := uint64(2); i < n; i++ {
		if prime, ok := isPrime(i); ok && prime {
			count++
		}
	}
	return count
}
