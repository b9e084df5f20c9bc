package common

// WipeByteArray overwrites the contents of the provided byte slice with
// zeros. Useful for removing passwords or key material from memory after use.
// A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
