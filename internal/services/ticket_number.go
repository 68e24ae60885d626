package services

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// TicketNumberGenerator produces TKT-<epoch ms>-<7 base-36 chars>. Numbers
// are unique enough in practice; the store's uniqueness constraint is the
// only guarantee.
type TicketNumberGenerator struct {
	Now  func() time.Time
	IntN func(n int) int
}

func (g TicketNumberGenerator) Next() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	intN := rand.Intn
	if g.IntN != nil {
		intN = g.IntN
	}

	var suffix strings.Builder
	for i := 0; i < 7; i++ {
		suffix.WriteByte(base36[intN(len(base36))])
	}
	return "TKT-" + strconv.FormatInt(now().UnixMilli(), 10) + "-" + strings.ToUpper(suffix.String())
}
