package extract

import "fmt"

// seqGen hands out predictable ids for tests.
type seqGen struct {
	n int
}

func (g *seqGen) NewID() string {
	g.n++
	return fmt.Sprintf("tmp-%d", g.n)
}
