package dx7

// Checksum returns the 7-bit SysEx checksum of data: the two's complement of
// the byte sum, masked to seven bits.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return (^sum + 1) & 0x7F
}
