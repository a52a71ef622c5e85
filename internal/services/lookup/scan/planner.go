package scan

import (
	"bytes"
	"io"
	"os"

	"bighole/internal/services/lookup/domain"
)

// Plan splits the data region of the file at path into chunkCount contiguous,
// non-overlapping chunks whose union is exactly rows 1..dataRows
// The last chunk absorbs the division remainder
// A missing, empty, or header-only file yields no chunks
func Plan(path string, chunkCount int) ([]domain.Chunk, error) {
	if chunkCount < 1 {
		chunkCount = 1
	}
	total, err := CountLines(path)
	if err != nil {
		return nil, err
	}
	dataRows := total - 1 // header
	if dataRows < 1 {
		return nil, nil
	}

	size := dataRows / chunkCount
	if size < 1 {
		size = 1
	}

	chunks := make([]domain.Chunk, 0, chunkCount)
	start := 1
	for i := 0; i < chunkCount && start <= dataRows; i++ {
		end := start + size
		if i == chunkCount-1 || end > dataRows+1 {
			end = dataRows + 1
		}
		chunks = append(chunks, domain.Chunk{Start: start, End: end})
		start = end
	}
	return chunks, nil
}

// CountLines counts raw lines with a buffered byte scan, no field parsing
// A trailing line without a final newline still counts
// The exact count matters: chunk boundaries and reported line numbers
// both derive from it
func CountLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	buf := make([]byte, 256*1024)
	var count int
	var lastByte byte
	for {
		n, err := f.Read(buf)
		if n > 0 {
			count += bytes.Count(buf[:n], []byte{'\n'})
			lastByte = buf[n-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	if lastByte != 0 && lastByte != '\n' {
		count++
	}
	return count, nil
}
