package utils

const (
	// NODETOL is the shared tolerance for treating a value as zero.
	NODETOL = 1.e-12
)

// WrapIndex maps a possibly-negative frequency index onto [0, n).
func WrapIndex(f, n int) (i int) {
	i = f % n
	if i < 0 {
		i += n
	}
	return
}

// CeilDiv returns ceil(a/b) for positive a, b.
func CeilDiv(a, b int) int {
	return (a + b - 1) / b
}
