package render

import "fmt"

const (
	mebibyte = 1 << 20
	gibibyte = 1 << 30
	tebibyte = 1 << 40
)

// FormatSize renders bytes in TB at or above 2^40 and in GB otherwise.
// Sub-gigabyte values stay in GB ("0.47 GB").
func FormatSize(bytes uint64) string {
	if bytes >= tebibyte {
		return fmt.Sprintf("%.2f TB", float64(bytes)/tebibyte)
	}
	return FormatGB(bytes)
}

// FormatGB always renders in GB. Memory sizes use it.
func FormatGB(bytes uint64) string {
	return fmt.Sprintf("%.2f GB", float64(bytes)/gibibyte)
}

// FormatMB renders bytes as a bare MB figure with two decimals.
func FormatMB(bytes uint64) string {
	return fmt.Sprintf("%.2f", float64(bytes)/mebibyte)
}
