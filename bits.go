package scte35

// bitReader reads bits MSB-first from a byte slice. A read past the end of
// the buffer sets the sticky truncated flag instead of panicking; parsers
// check it at the end of each field group and report ErrTruncatedInput.
type bitReader struct {
	data      []byte
	bitPos    int
	truncated bool
}

func newBitReader(data []byte) *bitReader {
	return &bitReader{data: data}
}

func (r *bitReader) bitsLeft() int {
	total := len(r.data) * 8
	if r.bitPos > total {
		return 0
	}
	return total - r.bitPos
}

// bytesConsumed reports how many whole bytes the reader has advanced past.
func (r *bitReader) bytesConsumed() int {
	return r.bitPos / 8
}

func (r *bitReader) readBit() bool {
	if r.bitPos >= len(r.data)*8 {
		r.truncated = true
		return false
	}
	byteIdx := r.bitPos / 8
	bitIdx := 7 - (r.bitPos % 8)
	r.bitPos++
	return (r.data[byteIdx]>>uint(bitIdx))&1 == 1
}

func (r *bitReader) readUint32(n int) uint32 {
	var val uint32
	for i := 0; i < n; i++ {
		val <<= 1
		if r.readBit() {
			val |= 1
		}
	}
	return val
}

func (r *bitReader) readUint64(n int) uint64 {
	var val uint64
	for i := 0; i < n; i++ {
		val <<= 1
		if r.readBit() {
			val |= 1
		}
	}
	return val
}

func (r *bitReader) readBytes(n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = byte(r.readUint32(8))
	}
	return out
}

func (r *bitReader) skip(n int) {
	r.bitPos += n
	if r.bitPos > len(r.data)*8 {
		r.truncated = true
	}
}
