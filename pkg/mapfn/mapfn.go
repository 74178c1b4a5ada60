package mapfn

// ConvertSlice converts a slice of type T to a slice of type R using the provided function.
// A nil input yields an empty, non-nil slice so JSON encodes it as [].
func ConvertSlice[T any, R any](input []T, fn func(T) R) []R {
	result := make([]R, len(input))
	for i, v := range input {
		result[i] = fn(v)
	}
	return result
}

// FilterSlice filters a slice based on the provided predicate function
func FilterSlice[T any](input []T, predicate func(T) bool) []T {
	result := make([]T, 0, len(input))
	for _, v := range input {
		if predicate(v) {
			result = append(result, v)
		}
	}
	return result
}

// CountBy counts elements per key
func CountBy[T any, K comparable](input []T, key func(T) K) map[K]int {
	result := make(map[K]int)
	for _, v := range input {
		result[key(v)]++
	}
	return result
}
