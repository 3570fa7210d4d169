package stream

import (
	"math/rand"
)

// testData generates deterministic pseudo-random test data.
func testData(length int) []byte {
	random := rand.New(rand.NewSource(int64(length)))
	data := make([]byte, length)
	random.Read(data)
	return data
}

// chunkedSource is a Source that yields data in chunks of predetermined
// maximum sizes and then signals the end of data forever.
type chunkedSource struct {
	// data is the remaining data.
	data []byte
	// chunks are the maximum sizes of successive reads. Once exhausted, reads
	// are limited only by the destination size.
	chunks []int
	// calls is the number of Read calls made.
	calls int
	// endCalls is the number of Read calls that signaled the end of data.
	endCalls int
}

// Read implements Source.Read.
func (s *chunkedSource) Read(buffer []byte) (int, error) {
	s.calls++
	if len(s.data) == 0 {
		s.endCalls++
		return 0, nil
	}
	limit := len(buffer)
	if len(s.chunks) > 0 {
		if s.chunks[0] < limit {
			limit = s.chunks[0]
		}
		s.chunks = s.chunks[1:]
	}
	n := copy(buffer[:limit], s.data)
	s.data = s.data[n:]
	return n, nil
}

// recordingSink is a Sink that records the sizes and contents of writes.
type recordingSink struct {
	// writes are the sizes of the writes performed.
	writes []int
	// data is the concatenation of all written data.
	data []byte
}

// Write implements Sink.Write.
func (s *recordingSink) Write(buffer []byte) (int, error) {
	s.writes = append(s.writes, len(buffer))
	s.data = append(s.data, buffer...)
	return len(buffer), nil
}
