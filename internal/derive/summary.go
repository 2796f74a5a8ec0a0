package derive

import "github.com/tbonnaire/apptrack/internal/types"

// LocalSummary computes aggregate automation metrics from a record snapshot.
// It mirrors the backend's processing summary so offline mode and tests have
// the same dashboard shape. Unprocessed emails are approximated by unlinked
// ones; only the backend knows true processing state.
func LocalSummary(apps []types.ApplicationRecord, emails []types.EmailRecord) types.Summary {
	s := types.Summary{
		TotalApplications: len(apps),
		TotalEmails:       len(emails),
		StatusBreakdown:   make(map[string]int),
	}

	for _, a := range apps {
		s.StatusBreakdown[a.Status]++
		if AutoCreated(a) {
			s.AutoCreatedApplications++
		}
	}
	s.ManualApplications = s.TotalApplications - s.AutoCreatedApplications

	for _, e := range emails {
		if e.ApplicationID != "" {
			s.LinkedEmails++
		}
	}
	s.UnprocessedEmails = s.TotalEmails - s.LinkedEmails

	if s.TotalApplications > 0 {
		s.AutomationRate = float64(s.AutoCreatedApplications) / float64(s.TotalApplications) * 100
	}
	return s
}
