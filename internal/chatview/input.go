package chatview

// MaxInputHeight caps the auto-sized input, in rows.
const MaxInputHeight = 120

// AutoHeight returns the input height for content that naturally needs
// the given number of rows.
func AutoHeight(natural int) int {
	if natural < 1 {
		return 1
	}
	return min(natural, MaxInputHeight)
}
