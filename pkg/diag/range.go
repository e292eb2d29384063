package diag

// Ranger is implemented by anything that covers a span of a source line, such
// as a scan.Token.
type Ranger interface {
	Range() Ranging
}

// Ranging is the half-open byte span [From, To) of a source line. Tokens embed
// it, so every token is a Ranger.
type Ranging struct {
	From int
	To   int
}

func (r Ranging) Range() Ranging { return r }

// PointRanging is an empty span at p, used for errors at the end of a line.
func PointRanging(p int) Ranging {
	return Ranging{p, p}
}

// MixedRanging spans from the start of a to the end of b, for example all
// the tokens of one link.
func MixedRanging(a, b Ranger) Ranging {
	return Ranging{a.Range().From, b.Range().To}
}
