// Package project turns derived application views into the table actually
// shown: a declarative filter, a stable sort, and a clamped page window.
package project

import (
	"sort"
	"strings"

	"github.com/tbonnaire/apptrack/internal/derive"
)

// DefaultPageSize matches the backend list page size.
const DefaultPageSize = 50

// Filter is the declarative filter specification. Blank components mean "no
// filter" — an all-blank Filter matches everything.
type Filter struct {
	Search      string
	Status      string
	Company     string
	Priority    string
	AutoCreated string // tri-state: "" (any), "true", "false"
}

// Active reports whether any filter component is set.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Search) != "" || f.Status != "" ||
		strings.TrimSpace(f.Company) != "" || f.Priority != "" || f.AutoCreated != ""
}

// Match applies every active component conjunctively. The free-text search is
// a case-insensitive substring test over company, title, contact, and notes.
func (f Filter) Match(v derive.ApplicationView) bool {
	if term := strings.TrimSpace(f.Search); term != "" {
		if !containsFold(v.CompanyName, term) &&
			!containsFold(v.JobTitle, term) &&
			!containsFold(v.ContactPerson, term) &&
			!containsFold(v.Notes, term) {
			return false
		}
	}
	if f.Status != "" && v.Status != f.Status {
		return false
	}
	if term := strings.TrimSpace(f.Company); term != "" && !containsFold(v.CompanyName, term) {
		return false
	}
	if f.Priority != "" && v.Priority != f.Priority {
		return false
	}
	switch f.AutoCreated {
	case "true":
		if !v.AutoCreated {
			return false
		}
	case "false":
		if v.AutoCreated {
			return false
		}
	}
	return true
}

// Sort is a field key plus direction.
type Sort struct {
	Field string
	Desc  bool
}

// Page is one projected window over the filtered, sorted views.
type Page struct {
	Items      []derive.ApplicationView
	Number     int
	TotalCount int
	TotalPages int
}

// Project filters, sorts, and paginates in one pass. The sort is stable
// (equal keys keep their prior relative order) and records missing the sort
// field go last regardless of direction. TotalPages is at least 1 even for an
// empty result, and the requested page clamps into [1, TotalPages].
func Project(views []derive.ApplicationView, f Filter, s Sort, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	filtered := make([]derive.ApplicationView, 0, len(views))
	for _, v := range views {
		if f.Match(v) {
			filtered = append(filtered, v)
		}
	}

	if s.Field != "" {
		sortViews(filtered, s)
	}

	total := len(filtered)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      filtered[start:end],
		Number:     page,
		TotalCount: total,
		TotalPages: totalPages,
	}
}

func sortViews(views []derive.ApplicationView, s Sort) {
	if s.Field == "email_count" {
		sort.SliceStable(views, func(i, j int) bool {
			a, b := views[i].LinkedEmailCount, views[j].LinkedEmailCount
			if a == b {
				return false
			}
			if s.Desc {
				return a > b
			}
			return a < b
		})
		return
	}

	sort.SliceStable(views, func(i, j int) bool {
		a, aok := sortValue(views[i], s.Field)
		b, bok := sortValue(views[j], s.Field)
		// Missing values sort last before the direction flip is applied.
		if aok != bok {
			return aok
		}
		if !aok || a == b {
			return false
		}
		if s.Desc {
			return a > b
		}
		return a < b
	})
}

// sortValue extracts the comparable value for a sort key. ISO date strings
// compare correctly as plain strings.
func sortValue(v derive.ApplicationView, field string) (string, bool) {
	var val string
	switch field {
	case "company_name":
		val = v.CompanyName
	case "job_title":
		val = v.JobTitle
	case "status":
		val = v.Status
	case "priority":
		val = v.Priority
	case "applied_date":
		val = v.AppliedDate
		if val == "" {
			val = v.CreatedAt
		}
	case "last_interaction":
		val = derive.LastInteraction(v.ApplicationRecord)
	case "contact_person":
		val = v.ContactPerson
	case "location":
		val = v.Location
	case "interview_date":
		val = v.InterviewDate
	case "urgency_level":
		val = v.UrgencyLevel
	case "source":
		val = v.Source
	case "created_at":
		val = v.CreatedAt
	case "updated_at":
		val = v.UpdatedAt
	default:
		return "", false
	}
	return val, val != ""
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
