// Package util provides small utility tools shared by the store packages.
// This file implements a size histogram used to summarize the distribution
// of encoded entry sizes without keeping every sample around. The histogram
// uses exponential bucket sizing to cover the full range from single bytes
// up to multi-gigabyte payloads with a fixed memory footprint.
//
// Key features include:
//   - Efficient memory usage through bucketing
//   - Exact total and average size tracking
//   - Statistical estimators (median, percentiles)
//
// This utility is particularly useful for reporting on store contents
// without performing expensive full scans.
package util

import "math"

// ----------------------------------------------------------------------------
// SizeHistogram
// ----------------------------------------------------------------------------

// SizeHistogram tracks the distribution of encoded data sizes.
// It organizes sizes into buckets for efficient memory usage
// while still providing accurate size estimations.
//
// Thread-safety: SizeHistogram is not synchronized. It is intended to be
// built and read by a single goroutine, matching the ownership model of
// the store packages that use it.
type SizeHistogram struct {
	boundaries []int   // bucket boundaries covering byte to GB range
	buckets    []int64 // count of items in each bucket
	count      int64   // total number of samples
	sum        int64   // sum of all sampled sizes
}

// NewSizeHistogram creates a new size histogram with default bucket boundaries.
// The boundaries are calibrated to handle sizes from bytes to gigabytes.
func NewSizeHistogram() *SizeHistogram {
	// Exponential bucket sizes cover a wide range efficiently,
	// from small values to over 4GB.
	return &SizeHistogram{
		boundaries: []int{
			16, 64, 256, 1024, 4096, // bytes: 16B to 4KB
			16384, 65536, 262144, 1048576, // KB range: 16KB to 1MB
			4194304, 16777216, 67108864, // MB range: 4MB to 64MB
			268435456, 1073741824, 4294967296, // above 256MB to 4GB
		},
		buckets: make([]int64, 16), // 15 boundaries + 1 for larger values
	}
}

// AddSample adds a size sample to the histogram.
func (h *SizeHistogram) AddSample(size int) {
	// Find the appropriate bucket for this size
	bucketIndex := 0
	for i, boundary := range h.boundaries {
		if size <= boundary {
			bucketIndex = i
			break
		}
		bucketIndex = len(h.boundaries) // last bucket for all larger values
	}

	h.buckets[bucketIndex]++
	h.count++
	h.sum += int64(size)
}

// Count returns the total number of samples.
func (h *SizeHistogram) Count() int64 {
	return h.count
}

// TotalSize returns the exact sum of all sampled sizes.
func (h *SizeHistogram) TotalSize() int64 {
	return h.sum
}

// AverageSize returns the average size across all samples.
func (h *SizeHistogram) AverageSize() int {
	if h.count == 0 {
		return 0
	}
	return int(h.sum / h.count)
}

// MedianEstimate estimates the median size based on the histogram.
func (h *SizeHistogram) MedianEstimate() int {
	return h.PercentileEstimate(50)
}

// PercentileEstimate returns an estimate for the given percentile (0-100).
func (h *SizeHistogram) PercentileEstimate(percentile int) int {
	if h.count == 0 || percentile < 0 || percentile > 100 {
		return 0
	}

	targetCount := int64(math.Ceil(float64(h.count) * float64(percentile) / 100.0))
	cumulativeCount := int64(0)

	for i, count := range h.buckets {
		cumulativeCount += count
		if cumulativeCount >= targetCount {
			if i == 0 {
				// for the first bucket, estimate as half of the boundary
				return h.boundaries[0] / 2
			} else if i < len(h.boundaries) {
				// for middle buckets, use the average of boundaries
				return (h.boundaries[i-1] + h.boundaries[i]) / 2
			}
			// for the last bucket, estimate as 2x the last boundary
			return h.boundaries[len(h.boundaries)-1] * 2
		}
	}

	// fallback, unreachable for valid input
	return int(h.sum / h.count)
}

