package parser

import (
	"bufio"
	"io"
	"sync"
)

const (
	// Buffer pool sizes
	scannerBufferSize    = 64 * 1024       // 64KB per scanner
	maxScannerBufferSize = 4 * 1024 * 1024 // 4MB max
)

// scannerPool manages a pool of scanner buffers to reduce allocations.
//
// Buffer Sizing Strategy:
// - Initial size: 64KB (scannerBufferSize), enough for any realistic text or table file
// - Maximum size: 4MB (maxScannerBufferSize) bounds a single line
// - Buffers are returned to the pool only if they're within those bounds
var scannerPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, scannerBufferSize)
		return &buf
	},
}

// acquireScannerBuffer gets a buffer for the scanner from the pool
func acquireScannerBuffer() []byte {
	bufPtr, ok := scannerPool.Get().(*[]byte)
	if !ok {
		return make([]byte, 0, scannerBufferSize)
	}
	buf := *bufPtr
	return buf[:0] // Reset length but keep capacity
}

// releaseScannerBuffer returns a scanner buffer to the pool with size validation.
func releaseScannerBuffer(buf []byte) {
	if buf == nil || cap(buf) < scannerBufferSize/2 {
		return // Don't pool small buffers
	}
	if cap(buf) <= maxScannerBufferSize {
		buf = buf[:0]
		scannerPool.Put(&buf)
	}
}

// createPooledScanner creates a line scanner with a pooled buffer.
// The caller must hand the returned buffer to releaseScannerBuffer when done.
func createPooledScanner(r io.Reader) (*bufio.Scanner, []byte) {
	scanner := bufio.NewScanner(r)
	buf := acquireScannerBuffer()
	scanner.Buffer(buf, maxScannerBufferSize)
	return scanner, buf
}
