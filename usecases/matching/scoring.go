package matching

import (
	"math"
	"strings"

	"github.com/clearlist/screener-backend/models"
	"github.com/clearlist/screener-backend/pure_utils"
)

// score computes the weighted confidence breakdown for one candidate. A
// dimension only enters the weighted average when both the query and the
// listed entity carry data for it, so missing attributes never drag a
// score down. The name dimension always participates.
func (m *Matcher) score(
	query models.ScreeningQuery,
	entity models.Entity,
	cand *candidate,
	queryHasDocument bool,
) models.ConfidenceBreakdown {
	weights := m.config.Weights

	breakdown := models.ConfidenceBreakdown{
		Name:     cand.nameScore,
		Included: []string{models.DimensionName},
	}
	weightedSum := weights.Name * cand.nameScore
	weightTotal := weights.Name

	if queryHasDocument {
		if cand.docMatched {
			breakdown.Document = 100
		}
		breakdown.Included = append(breakdown.Included, models.DimensionDocument)
		weightedSum += weights.Document * breakdown.Document
		weightTotal += weights.Document
	}

	if dobScore, ok := scoreDob(query.DateOfBirth, entity.DateOfBirth); ok {
		breakdown.Dob = dobScore
		breakdown.Included = append(breakdown.Included, models.DimensionDob)
		weightedSum += weights.Dob * dobScore
		weightTotal += weights.Dob
	}

	if natScore, ok := scoreNationality(query.Nationality, entity); ok {
		breakdown.Nationality = natScore
		breakdown.Included = append(breakdown.Included, models.DimensionNationality)
		weightedSum += weights.Nationality * natScore
		weightTotal += weights.Nationality
	}

	if addrScore, ok := scoreAddress(query.Country, entity.Addresses); ok {
		breakdown.Address = addrScore
		breakdown.Included = append(breakdown.Included, models.DimensionAddress)
		weightedSum += weights.Address * addrScore
		weightTotal += weights.Address
	}

	if weightTotal > 0 {
		breakdown.Overall = weightedSum / weightTotal
	}
	return breakdown
}

// scoreDob compares dates of birth. Exact normalized equality scores 100;
// otherwise the score decays by 20 points per year of difference. The
// dimension is skipped when either side lacks a date.
func scoreDob(queryDob, entityDob string) (float64, bool) {
	queryDob = strings.TrimSpace(queryDob)
	entityDob = strings.TrimSpace(entityDob)
	if queryDob == "" || entityDob == "" {
		return 0, false
	}
	if queryDob == entityDob {
		return 100, true
	}
	queryYear, okQuery := models.YearOf(queryDob)
	entityYear, okEntity := models.YearOf(entityDob)
	if !okQuery || !okEntity {
		return 0, true
	}
	delta := math.Abs(float64(queryYear - entityYear))
	return math.Max(0, 100-20*delta), true
}

// scoreNationality compares the query nationality against the entity's
// nationalities and citizenships, all in ISO alpha-2 form.
func scoreNationality(queryNationality string, entity models.Entity) (float64, bool) {
	queryNationality = strings.TrimSpace(queryNationality)
	if queryNationality == "" {
		return 0, false
	}
	countries := make([]string, 0, 2)
	if entity.Nationality != "" {
		countries = append(countries, entity.Nationality)
	}
	if entity.Citizenship != "" {
		countries = append(countries, entity.Citizenship)
	}
	if len(countries) == 0 {
		return 0, false
	}
	normalized := pure_utils.NormalizeCountry(queryNationality)
	for _, country := range countries {
		if country == normalized {
			return 100, true
		}
	}
	return 0, true
}

// scoreAddress compares the query country against the countries of the
// entity's listed addresses.
func scoreAddress(queryCountry string, addresses []models.Address) (float64, bool) {
	queryCountry = strings.TrimSpace(queryCountry)
	if queryCountry == "" {
		return 0, false
	}
	entityCountries := make([]string, 0, len(addresses))
	for _, address := range addresses {
		if address.NormalizedCountry != "" {
			entityCountries = append(entityCountries, address.NormalizedCountry)
		}
	}
	if len(entityCountries) == 0 {
		return 0, false
	}
	normalized := pure_utils.NormalizeCountry(queryCountry)
	for _, country := range entityCountries {
		if country == normalized {
			return 100, true
		}
	}
	return 0, true
}
