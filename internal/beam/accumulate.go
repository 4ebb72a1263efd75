package beam

import "fmt"

// MultiCumsum replaces values with a running sum computed independently in
// each contiguous segment. Segment k covers the next partitions[k] elements.
// The first element of every segment is set to start and each following
// element becomes values[i] + values[i-1].
//
// A zero entry in partitions is an empty segment. The partitions must sum to
// len(values), otherwise ErrInvalidPartition is returned and values is left
// untouched.
func MultiCumsum(values []float64, partitions []int, start float64) error {
	if len(partitions) == 0 {
		return fmt.Errorf("%w: no segments given for %d values", ErrInvalidPartition, len(values))
	}
	total := 0
	for k, n := range partitions {
		if n < 0 {
			return fmt.Errorf("%w: segment %d has negative length %d", ErrInvalidPartition, k, n)
		}
		total += n
	}
	if total != len(values) {
		return fmt.Errorf("%w: segments cover %d values, buffer has %d", ErrInvalidPartition, total, len(values))
	}

	i := 0
	for _, n := range partitions {
		if n == 0 {
			continue
		}
		end := i + n
		values[i] = start
		for j := i + 1; j < end; j++ {
			values[j] += values[j-1]
		}
		i = end
	}
	return nil
}
