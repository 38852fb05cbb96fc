package scoring

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/nao1215/phishmodel/internal/features"
	"github.com/nao1215/phishmodel/internal/model"
)

// BlockThreshold is the probability at or above which a URL is blocked
// outright rather than flagged.
const BlockThreshold = 0.85

// Scorer scores URLs with a validated model. It is safe for concurrent use.
type Scorer struct {
	model    *model.Model
	safelist map[string]struct{}
}

// Load reads and validates the model artifact at path.
func Load(path string) (*Scorer, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided model path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	var m model.Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInvalidModel, err)
	}
	return New(&m)
}

// New creates a Scorer for m with DefaultSafelist.
func New(m *model.Model) (*Scorer, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{
		model:    m,
		safelist: normalizeSafelist(DefaultSafelist),
	}, nil
}

// WithSafelist returns a copy of the scorer that uses domains instead of
// the current safelist. An empty list disables safelisting.
func (s *Scorer) WithSafelist(domains []string) *Scorer {
	return &Scorer{
		model:    s.model,
		safelist: normalizeSafelist(domains),
	}
}

// Model returns the model used for scoring.
func (s *Scorer) Model() *model.Model {
	return s.model
}

// Score computes the verdict for rawURL.
func (s *Scorer) Score(rawURL string) model.Verdict {
	host := features.DeriveHost(rawURL)
	x := features.Extract(rawURL)

	v := model.Verdict{
		URL:      rawURL,
		Host:     host,
		Features: x,
	}

	if s.isSafelisted(rawURL, host) {
		v.Decision = model.DecisionSafelisted
		return v
	}

	p := s.model.Probability(x)
	v.Probability = p
	switch {
	case p >= BlockThreshold:
		v.Decision = model.DecisionBlock
	case p >= s.model.Threshold:
		v.Decision = model.DecisionSuspicious
	default:
		v.Decision = model.DecisionClean
	}
	return v
}

// isSafelisted reports whether host or its registrable domain, or any
// parent domain of host, is in the safelist. IP hosts never match.
//
// Design decision: Matching walks whole labels instead of testing a string
// suffix. A plain suffix test would let "evilgoogle.com" ride on
// "google.com", which is exactly the lookalike pattern phishing relies on.
func (s *Scorer) isSafelisted(rawURL, host string) bool {
	if len(s.safelist) == 0 || host == "" {
		return false
	}
	parts, err := features.SplitHost(rawURL)
	switch {
	case err != nil:
		if features.HasIP(host) == 1 {
			return false
		}
	case parts.IsIP():
		return false
	default:
		if _, ok := s.safelist[parts.Registrable()]; ok {
			return true
		}
	}
	for h := host; h != ""; {
		if _, ok := s.safelist[h]; ok {
			return true
		}
		i := strings.IndexByte(h, '.')
		if i < 0 {
			break
		}
		h = h[i+1:]
	}
	return false
}

func normalizeSafelist(domains []string) map[string]struct{} {
	out := make(map[string]struct{}, len(domains))
	for _, d := range domains {
		d = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(d)), ".")
		if d != "" {
			out[d] = struct{}{}
		}
	}
	return out
}
