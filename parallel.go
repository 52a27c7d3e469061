package affinity

import "sync"

// UpdateAvailabilitiesParallel computes the availability half-step using
// multiple goroutines. numWorkers controls the degree of parallelism; if
// <= 1, it falls back to the single-threaded UpdateAvailabilities.
//
// The result is bitwise identical to UpdateAvailabilities: each entry is
// computed by the same arithmetic and every worker writes only its own
// row range of dst, so no synchronization beyond the final barrier is
// needed.
func UpdateAvailabilitiesParallel(dst, prevR, prevA []float64, n int, damping float64, numWorkers int) {
	if numWorkers <= 1 || n <= 1 {
		UpdateAvailabilities(dst, prevR, prevA, n, damping)
		return
	}

	var wg sync.WaitGroup
	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > n {
			endRow = n
		}
		if startRow >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			updateAvailabilityRows(dst, prevR, prevA, n, damping, start, end)
		}(startRow, endRow)
	}

	wg.Wait()
}

// UpdateResponsibilitiesParallel computes the responsibility half-step using
// multiple goroutines. Falls back to the sequential UpdateResponsibilities
// if numWorkers <= 1. Bitwise identical to the sequential version.
func UpdateResponsibilitiesParallel(dst, a, s, prevR []float64, n int, damping float64, numWorkers int) {
	if numWorkers <= 1 || n <= 1 {
		UpdateResponsibilities(dst, a, s, prevR, n, damping)
		return
	}

	var wg sync.WaitGroup
	rowsPerWorker := (n + numWorkers - 1) / numWorkers

	for w := 0; w < numWorkers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > n {
			endRow = n
		}
		if startRow >= n {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			updateResponsibilityRows(dst, a, s, prevR, n, damping, start, end)
		}(startRow, endRow)
	}

	wg.Wait()
}
