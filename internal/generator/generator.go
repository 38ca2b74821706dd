// Package generator builds random array input for compiled programs.
package generator

import (
	"io"
	"math/rand"
	"time"

	"github.com/verte-zerg/sysyrt/internal/sysio"
)

// Generator produces random integer arrays.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Array returns n values drawn uniformly from [-limit, limit], or [0, limit]
// when allowNegative is false.
func (g *Generator) Array(n int, limit int32, allowNegative bool) []int32 {
	if n < 0 {
		n = 0
	}
	if limit < 0 {
		limit = 0
	}
	out := make([]int32, n)
	for i := range out {
		v := int32(g.rnd.Int63n(int64(limit) + 1))
		if allowNegative && g.rnd.Intn(2) == 0 {
			v = -v
		}
		out[i] = v
	}
	return out
}

// WriteArray writes values in the "n a0 a1 ...\n" form read by getarray.
func WriteArray(w io.Writer, values []int32) error {
	out := sysio.New(nil, w)
	if err := out.WriteInt(int32(len(values))); err != nil {
		return err
	}
	for _, v := range values {
		if err := out.WriteChar(' '); err != nil {
			return err
		}
		if err := out.WriteInt(v); err != nil {
			return err
		}
	}
	return out.WriteChar('\n')
}
