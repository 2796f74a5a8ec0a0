// Package derive computes per-application facts from the raw record snapshot:
// linked-email counts, the auto-created flag, and display fields.
//
// Everything here is a pure function over the inputs. Derived views are never
// cached across store mutations — the tracker recomputes them after every
// replace, prepend, or remove.
package derive

import (
	"strings"

	"github.com/tbonnaire/apptrack/internal/types"
)

// ApplicationView is an ApplicationRecord plus its derived fields.
type ApplicationView struct {
	types.ApplicationRecord

	LinkedEmailCount int
	AutoCreated      bool
	StatusLabel      string
	PriorityIcon     string
}

// Views derives a view for every application. Emails are indexed by
// application_id once per call, so the scan is O(apps + emails); unlinked
// emails (empty application_id) are never counted against any application.
func Views(apps []types.ApplicationRecord, emails []types.EmailRecord) []ApplicationView {
	counts := make(map[string]int, len(apps))
	for _, e := range emails {
		if e.ApplicationID == "" {
			continue
		}
		counts[e.ApplicationID]++
	}

	views := make([]ApplicationView, len(apps))
	for i, a := range apps {
		views[i] = ApplicationView{
			ApplicationRecord: a,
			LinkedEmailCount:  counts[a.ID],
			AutoCreated:       AutoCreated(a),
			StatusLabel:       types.StatusLabel(a.Status),
			PriorityIcon:      PriorityIcon(a.Priority),
		}
	}
	return views
}

// AutoCreated reports whether the backend created this application from email
// content. An explicit auto_created boolean wins; otherwise fall back to the
// marker substring the backend writes into the source field.
func AutoCreated(a types.ApplicationRecord) bool {
	if a.AutoCreated != nil {
		return *a.AutoCreated
	}
	return strings.Contains(a.Source, types.AutoCreatedMarker)
}

// EffectivePriority returns the record's priority, defaulting to MEDIUM for
// display when the field is absent.
func EffectivePriority(a types.ApplicationRecord) string {
	if a.Priority == "" {
		return types.PriorityMedium
	}
	return a.Priority
}

// PriorityIcon maps a priority to its display icon. Unknown or empty values
// fall back to the medium icon.
func PriorityIcon(priority string) string {
	switch priority {
	case types.PriorityHigh:
		return "🔴"
	case types.PriorityLow:
		return "🟢"
	default:
		return "🟡"
	}
}

// LastInteraction returns the most recent activity date for a view:
// last_update_date when set, otherwise updated_at.
func LastInteraction(a types.ApplicationRecord) string {
	if a.LastUpdateDate != "" {
		return a.LastUpdateDate
	}
	return a.UpdatedAt
}

// Timeline returns the emails linked to one application, in input order.
func Timeline(appID string, emails []types.EmailRecord) []types.EmailRecord {
	var out []types.EmailRecord
	for _, e := range emails {
		if e.ApplicationID == appID && appID != "" {
			out = append(out, e)
		}
	}
	return out
}
