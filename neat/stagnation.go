package neat

import "sort"

// StagnationReport records, for telemetry purposes, how long a species has
// been stagnant and whether SpeciesSet.RetireStagnant, called with the same
// arguments, would retire it.
type StagnationReport struct {
	SpeciesID    SpeciesID
	GensStagnant int
	Retired      bool
}

// ReportStagnation computes, without mutating ss, which species are
// currently stagnant and whether retirement would remove them, so a caller
// (the driver's telemetry reporter) can log before applying RetireStagnant.
func ReportStagnation(ss *SpeciesSet, generationNumber, stagnationAfter, elitismSpecies int) []StagnationReport {
	var stagnant []*Species
	reports := make([]StagnationReport, 0, len(ss.Species))
	for _, s := range ss.Species {
		gens := generationNumber - s.LastImproved
		reports = append(reports, StagnationReport{SpeciesID: s.ID, GensStagnant: gens})
		if gens >= stagnationAfter {
			stagnant = append(stagnant, s)
		}
	}
	if len(stagnant) <= elitismSpecies {
		return reports
	}

	sort.Slice(stagnant, func(i, j int) bool { return stagnant[i].AdjustedFitness > stagnant[j].AdjustedFitness })
	retiredIDs := make(map[SpeciesID]bool, len(stagnant)-elitismSpecies)
	for _, s := range stagnant[elitismSpecies:] {
		retiredIDs[s.ID] = true
	}
	for i := range reports {
		if retiredIDs[reports[i].SpeciesID] {
			reports[i].Retired = true
		}
	}
	return reports
}
