package repositories

import (
	"encoding/xml"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/clearlist/screener-backend/models"
)

// Watchlist feeds are downloaded from the open internet and must be treated
// as adversarial. encoding/xml never resolves external entities, never
// fetches DTDs and never touches the network, which rules out XXE by
// construction; what remains to bound is input size, element depth and
// custom entity definitions.
const (
	// MaxFeedBytes caps the raw document size. The OFAC enhanced SDN file
	// is ~120MB; anything past this is either corrupt or hostile.
	MaxFeedBytes int64 = 512 << 20

	// maxElementDepth rejects pathological nesting long before the decoder
	// would recurse into it.
	maxElementDepth = 64
)

// hardenedDecoder wraps an XML token stream with strict parsing, a byte
// limit and a depth guard.
type hardenedDecoder struct {
	dec     *xml.Decoder
	limited *io.LimitedReader
	depth   int
}

func newHardenedDecoder(r io.Reader) *hardenedDecoder {
	lr := &io.LimitedReader{R: r, N: MaxFeedBytes + 1}
	dec := xml.NewDecoder(lr)
	dec.Strict = true
	// No custom entity table: anything beyond the five predefined XML
	// entities is a parse error, which kills entity-expansion payloads.
	dec.Entity = map[string]string{}

	return &hardenedDecoder{dec: dec, limited: lr}
}

// Token returns the next token, enforcing the size and depth bounds.
func (h *hardenedDecoder) Token() (xml.Token, error) {
	tok, err := h.dec.Token()
	if err != nil {
		if h.limited.N <= 0 {
			return nil, models.ErrFeedOversized
		}
		return nil, err
	}

	switch tok.(type) {
	case xml.StartElement:
		h.depth++
		if h.depth > maxElementDepth {
			return nil, errors.Wrap(models.FeedParseError, "maximum element depth exceeded")
		}
	case xml.EndElement:
		h.depth--
	}

	return tok, nil
}

// DecodeElement unmarshals the element opened by start into v.
func (h *hardenedDecoder) DecodeElement(v any, start *xml.StartElement) error {
	err := h.dec.DecodeElement(v, start)
	if err == nil {
		// DecodeElement consumed the matching end element.
		h.depth--
	}
	return err
}
