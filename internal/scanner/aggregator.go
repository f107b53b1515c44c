package scanner

import "github.com/shivam1584818/fb-group-finder-backend/internal/models"

// Aggregate keeps matched outcomes in the order given and counts every outcome
// as visited. Errored outcomes are listed as failures.
func Aggregate(outcomes []models.VisitOutcome) models.ScanResult {
	result := models.ScanResult{
		Matches:      []models.Match{},
		TotalVisited: len(outcomes),
	}

	for _, o := range outcomes {
		switch o.Status {
		case models.VisitMatched:
			result.Matches = append(result.Matches, models.Match{
				Label:           o.Candidate.Label,
				Location:        o.Candidate.Location,
				SecondarySignal: o.SecondarySignal,
			})
		case models.VisitErrored:
			result.Failures = append(result.Failures, models.Failure{
				Location: o.Candidate.Location,
				Reason:   o.ErrorDetail,
			})
		}
	}

	return result
}
