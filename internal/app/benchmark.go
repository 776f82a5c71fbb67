package app

import (
	"encoding/binary"
	"time"

	"github.com/transportsec/cipher-suite/internal/domain/cipher"
	"github.com/transportsec/cipher-suite/internal/pkg/logger"
)

// benchAADLen is the length of the empty-content AAD set per trial when the
// instance supports it, so AEAD benchmarks pay their real per-packet cost.
const benchAADLen = 4

// benchmarkService implements the BenchmarkService interface.
type benchmarkService struct {
	logger logger.Logger
}

// NewBenchmarkService creates a new benchmarkService instance.
func NewBenchmarkService(logger logger.Logger) (cipher.BenchmarkService, error) {
	return &benchmarkService{
		logger: logger,
	}, nil
}

// BitsPerSecond estimates the sustained encrypt (+ tag) throughput of c in
// bits per second for payloads of bufSize bytes over trials repetitions. c
// must already be constructed and keyed. Any failure, a non-positive
// parameter, or a run too fast to time yields the sentinel 0, which callers
// must read as "could not measure", not "zero throughput".
func (s *benchmarkService) BitsPerSecond(c *cipher.Cipher, bufSize, trials int) uint64 {
	if c == nil || c.Type() == nil || bufSize <= 0 || trials <= 0 {
		return 0
	}
	t := c.Type()

	// Payload plus room for the largest tag the descriptor can produce.
	buf := make([]byte, bufSize+t.MaxTagLen)
	nonce := make([]byte, t.IVLen)
	aad := make([]byte, benchAADLen)
	supportsAEAD := c.SupportsAEAD()

	start := time.Now()
	for i := 0; i < trials; i++ {
		// Monotonically varying IV: trial counter in the trailing bytes.
		if len(nonce) >= 4 {
			binary.BigEndian.PutUint32(nonce[len(nonce)-4:], uint32(i))
		}
		if err := c.SetIV(nonce, cipher.DirectionEncrypt); err != nil {
			return 0
		}

		if supportsAEAD {
			if err := c.SetAAD(aad); err != nil {
				return 0
			}
		}

		n, err := c.Encrypt(buf, buf[:bufSize])
		if err != nil {
			return 0
		}

		if supportsAEAD {
			// Tag length is re-read every trial, never assumed stable.
			if _, err := c.Tag(buf[n:]); err != nil {
				return 0
			}
		}
	}
	elapsed := time.Since(start)

	if elapsed <= 0 {
		// Too fast for the clock resolution.
		return 0
	}

	return uint64(8 * float64(bufSize) * float64(trials) / elapsed.Seconds())
}
