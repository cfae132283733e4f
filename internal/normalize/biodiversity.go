package normalize

import (
	"math"
	"sort"
	"strings"

	"gaia-platform/internal/models"
)

const (
	// BiodiversityRadiusKm is the occurrence search radius.
	BiodiversityRadiusKm = 10.0

	// atRiskShare is a flat estimate of threatened species, not an
	// extinction-risk model.
	atRiskShare = 0.15
)

// BiodiversityAreaHa is the occurrence search disc in hectares.
var BiodiversityAreaHa = math.Pi * BiodiversityRadiusKm * BiodiversityRadiusKm * 100

// Biodiversity aggregates occurrences per species and scores evenness.
func Biodiversity(r models.BiodiversityReading) models.BiodiversityMetrics {
	bySpecies := make(map[string]*models.SpeciesCount)
	kingdoms := make(map[string]int)

	for _, occ := range r.Occurrences {
		name := strings.TrimSpace(occ.ScientificName)
		if name == "" {
			continue
		}
		if occ.Kingdom != "" {
			kingdoms[occ.Kingdom]++
		}

		sc, ok := bySpecies[name]
		if !ok {
			sc = &models.SpeciesCount{ScientificName: name, Kingdom: occ.Kingdom}
			bySpecies[name] = sc
		}
		sc.Count++
		if sc.CommonName == "" {
			sc.CommonName = occ.VernacularName
		}
		if sc.Kingdom == "" {
			sc.Kingdom = occ.Kingdom
		}
		if occ.EventDate > sc.LastSeen {
			sc.LastSeen = occ.EventDate
		}
	}

	species := make([]models.SpeciesCount, 0, len(bySpecies))
	for _, sc := range bySpecies {
		species = append(species, *sc)
	}
	sort.Slice(species, func(i, j int) bool {
		if species[i].Count != species[j].Count {
			return species[i].Count > species[j].Count
		}
		return species[i].ScientificName < species[j].ScientificName
	})

	shannon := ShannonIndex(species)
	unique := len(species)
	score := 0.0
	if unique > 1 {
		score = shannon / math.Log(float64(unique)) * 100
	}

	total := r.TotalOccurrences
	if total < len(r.Occurrences) {
		total = len(r.Occurrences)
	}

	return models.BiodiversityMetrics{
		TotalOccurrences: total,
		SampledRecords:   len(r.Occurrences),
		UniqueSpecies:    unique,
		Species:          species,
		Kingdoms:         kingdoms,
		ShannonIndex:     math.Round(shannon*1000) / 1000,
		DiversityScore:   math.Round(clampScore(score)),
		AtRiskSpecies:    AtRiskSpecies(unique),
		AreaHectares:     math.Round(BiodiversityAreaHa),
	}
}

// ShannonIndex is H = -Σ p·ln p over species counts.
func ShannonIndex(species []models.SpeciesCount) float64 {
	var n float64
	for _, s := range species {
		n += float64(s.Count)
	}
	if n == 0 {
		return 0
	}
	var h float64
	for _, s := range species {
		if s.Count == 0 {
			continue
		}
		p := float64(s.Count) / n
		h -= p * math.Log(p)
	}
	return h
}

// AtRiskSpecies estimates threatened species as 15% of unique species.
func AtRiskSpecies(uniqueSpecies int) int {
	return int(math.Floor(atRiskShare*float64(uniqueSpecies) + 0.5))
}
