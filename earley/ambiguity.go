package earley

// AmbiguityInfo is the supplemented diagnostic of spec.md §7's
// AmbiguityNotice: informational only, never a hard error. A Chart may be
// scanned for items carrying more than one Source, each such item marking
// a point where the tree builder's tie-break (spec.md §4.3) had to choose
// among multiple derivations.
type AmbiguityInfo struct {
	Count int
	Sites []AmbiguitySite
}

// AmbiguitySite names one item with competing derivations.
type AmbiguitySite struct {
	Pos        int
	Rule       string
	AltIdx     int
	Origin     int
	NumSources int
}

// DetectAmbiguity scans a Chart for items with more than one Source.
func DetectAmbiguity(c *Chart) AmbiguityInfo {
	var info AmbiguityInfo
	for _, col := range c.Columns {
		for _, it := range col.Items {
			if len(it.Sources) > 1 {
				info.Count++
				info.Sites = append(info.Sites, AmbiguitySite{
					Pos:        col.Pos,
					Rule:       c.Grammar.Name(it.Rule.Name),
					AltIdx:     it.AltIdx,
					Origin:     it.Origin,
					NumSources: len(it.Sources),
				})
			}
		}
	}
	return info
}
