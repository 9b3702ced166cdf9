package reservation

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

const codeSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeGenerator produces human-readable booking codes of the form
// PREFIX-TIMESTAMP-SUFFIX, for example OT-LZ3K9F2-QX7A. The timestamp part is
// the creation instant in base 36 milliseconds, the suffix four random
// characters.
type CodeGenerator struct {
	prefix string
	now    func() time.Time

	mu        sync.Mutex
	lastStamp int64
}

// NewCodeGenerator builds a generator for the given code prefix. A nil now
// function defaults to time.Now.
func NewCodeGenerator(prefix string, now func() time.Time) *CodeGenerator {
	if now == nil {
		now = time.Now
	}
	return &CodeGenerator{prefix: strings.ToUpper(prefix), now: now}
}

// Next returns a fresh booking code. Calls within the same millisecond bump
// the timestamp component so codes never repeat even under a frozen clock.
func (g *CodeGenerator) Next() (string, error) {
	stamp := g.now().UnixMilli()

	g.mu.Lock()
	if stamp <= g.lastStamp {
		stamp = g.lastStamp + 1
	}
	g.lastStamp = stamp
	g.mu.Unlock()

	suffix, err := randomSuffix(4)
	if err != nil {
		return "", fmt.Errorf("generate booking code: %w", err)
	}
	timestamp := strings.ToUpper(strconv.FormatInt(stamp, 36))
	return fmt.Sprintf("%s-%s-%s", g.prefix, timestamp, suffix), nil
}

func randomSuffix(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = codeSuffixAlphabet[int(b)%len(codeSuffixAlphabet)]
	}
	return string(buf), nil
}
