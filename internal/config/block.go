package config

// Read block bounds. The chunker aims for roughly linesPerBlock lines per read.
const (
	MinReadBlockSize = 4 * 1024
	MaxReadBlockSize = 1024 * 1024
	SkipChunkSize    = 4 * 1024

	linesPerBlock = 256
)

// ReadBlockSize returns how many bytes to request from the source per read
// for a given line width.
func ReadBlockSize(bytesPerLine int) int {
	if bytesPerLine >= MaxReadBlockSize/linesPerBlock {
		return MaxReadBlockSize
	}
	return max(bytesPerLine*linesPerBlock, MinReadBlockSize)
}
