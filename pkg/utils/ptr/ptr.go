package ptr

func PointTo[T any](value T) *T {
	return &value
}
