package cbm

import "strings"

// SyncMark is the shortest run of one bits the 1541 treats as a sync
const SyncMark = "1111111111"

// ToBits expands data into a string of '0' and '1', most significant bit first.
// Sync marks do not respect byte boundaries, so the track decoder searches and
// slices this representation instead of the raw bytes.
func ToBits(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data) * 8)
	for _, b := range data {
		for shift := 7; shift >= 0; shift-- {
			if b&(1<<shift) != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
	}
	return sb.String()
}

// ToBytes packs a bit string back into bytes. An incomplete trailing byte is
// padded with one bits, which reads back as idle signal rather than data.
func ToBytes(bits string) []byte {
	result := make([]byte, 0, (len(bits)+7)/8)
	for start := 0; start < len(bits); start += 8 {
		var b byte
		for i := 0; i < 8; i++ {
			b <<= 1
			if start+i >= len(bits) || bits[start+i] == '1' {
				b |= 1
			}
		}
		result = append(result, b)
	}
	return result
}

// SplitOnSync rotates a circular bit string so it begins at its first sync
// mark, then returns the non-empty runs found between sync marks with any
// residual one bits trimmed from both ends. ok is false when no sync mark
// exists.
func SplitOnSync(bits string) (chunks []string, ok bool) {
	first := strings.Index(bits, SyncMark)
	if first < 0 {
		return nil, false
	}
	rotated := bits[first:] + bits[:first]
	for _, chunk := range strings.Split(rotated, SyncMark) {
		chunk = strings.Trim(chunk, "1")
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks, true
}
