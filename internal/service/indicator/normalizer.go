package indicator

import (
	"QuoteVault/internal/domain/models"
	"QuoteVault/pkg/util"
)

// Normalizer turns raw upstream records into typed Indicator values. It is
// pure: classification either yields a well-formed Indicator or drops the
// record, and numeric variance in the payload is absorbed by the parser.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize classifies and converts every record, silently dropping the
// ambiguous ones. Output order follows input order.
func (n *Normalizer) Normalize(records []map[string]interface{}) []models.Indicator {
	out := make([]models.Indicator, 0, len(records))
	for _, rec := range records {
		if ind, ok := n.NormalizeOne(rec); ok {
			out = append(out, ind)
		}
	}
	return out
}

// NormalizeOne converts one raw record. A record is a currency when it carries
// a non-empty code plus buy and variation fields; an index when it carries a
// name and a variation field but no usable code. Anything else is dropped.
func (n *Normalizer) NormalizeOne(rec map[string]interface{}) (models.Indicator, bool) {
	name, _ := rec["name"].(string)

	if code := stringField(rec, "code"); code != "" && name != "" && hasField(rec, "buy") && hasField(rec, "variation") {
		return models.Indicator{
			ID:        "currency_" + code,
			Type:      models.IndicatorCurrency,
			Code:      code,
			Name:      name,
			Buy:       util.ParseNumeric(rec["buy"]),
			Sell:      util.ParseNumericOptional(rec["sell"]),
			Variation: util.ParseNumeric(rec["variation"]),
		}, true
	}

	if name != "" && hasField(rec, "variation") {
		// Indexes have no stable upstream code; the name doubles as the key.
		ind := models.Indicator{
			ID:        "index_" + name,
			Type:      models.IndicatorIndex,
			Name:      name,
			Buy:       util.ParseNumeric(rec["buy"]),
			Sell:      util.ParseNumericOptional(rec["sell"]),
			Variation: util.ParseNumeric(rec["variation"]),
		}
		if hasField(rec, "points") {
			ind.Points = util.ParseNumericOptional(rec["points"])
		}
		return ind, true
	}

	return models.Indicator{}, false
}

func stringField(rec map[string]interface{}, key string) string {
	s, _ := rec[key].(string)
	return s
}

func hasField(rec map[string]interface{}, key string) bool {
	_, ok := rec[key]
	return ok
}
