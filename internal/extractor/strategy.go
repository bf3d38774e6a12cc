package extractor

import (
	"tmercer18/pricescout/logger"
)

// strategy runs an ordered list of search methods and returns the first
// candidate that survives normalization. A candidate that fails to normalize
// is discarded and the next method is tried; no merging happens across
// methods.
type strategy struct {
	name    string
	methods []searchMethod
}

func (s *strategy) Name() string {
	return s.name
}

func (s *strategy) Extract(d *Document) *NormalizedPrice {
	log := logger.ForVendor(s.name)
	for _, m := range s.methods {
		cand := m.try(d)
		if cand == nil || cand.empty() {
			continue
		}
		np := Normalize(cand)
		if np == nil {
			log.Debug().
				Str("method", m.name).
				Str("price", cand.Price).
				Msg("Candidate failed normalization, trying next method")
			continue
		}
		log.Debug().
			Str("method", m.name).
			Float64("price", np.Price).
			Msg("Price extracted")
		return np
	}
	return nil
}
