package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbonnaire/apptrack/internal/types"
)

func serve(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, time.Second)
}

func TestFetchApplicationsBareArray(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/job-applications/", r.URL.Path)
		w.Write([]byte(`[{"id":"a1","company_name":"Acme","job_title":"Dev","status":"APPLIED"}]`))
	})

	apps, err := c.FetchApplications(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Acme", apps[0].CompanyName)
}

func TestFetchApplicationsEnvelope(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"id":"a1","company_name":"Acme","job_title":"Dev","status":"APPLIED"},
			{"id":"a2","company_name":"Globex","job_title":"SRE","status":"INTERVIEW"}],
			"total":2,"page":1,"size":50,"pages":1}`))
	})

	apps, err := c.FetchApplications(context.Background())
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, "a2", apps[1].ID)
}

func TestFetchApplicationsShapeMismatch(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records":[]}`))
	})

	_, err := c.FetchApplications(context.Background())
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusOK, be.Status)
	assert.Contains(t, be.Message, "shape")
}

func TestFetchEmailsEmptyEnvelope(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[],"total":0}`))
	})

	emails, err := c.FetchEmails(context.Background())
	require.NoError(t, err)
	assert.Empty(t, emails)
}

func TestBackendErrorCarriesDetail(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"application not found"}`))
	})

	err := c.DeleteApplication(context.Background(), "nope")
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusNotFound, be.Status)
	assert.Equal(t, "application not found", be.Message)
	assert.NotErrorIs(t, err, ErrNetwork)
}

func TestNetworkErrorIsSentinel(t *testing.T) {
	c := New("http://127.0.0.1:1", time.Second)
	_, err := c.FetchApplications(context.Background())
	assert.True(t, errors.Is(err, ErrNetwork), "got %v", err)
}

func TestFetchSummaryUnwrapsEnvelope(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/intelligent-tracker/processing-summary", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"total_applications":7,"auto_created_applications":3,
			"automation_rate":42.9,"status_breakdown":{"APPLIED":4}}}`))
	})

	s, err := c.FetchSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, s.TotalApplications)
	assert.Equal(t, 4, s.StatusCount(types.StatusApplied))
	assert.InDelta(t, 42.9, s.AutomationRate, 0.001)
}

func TestProcessEmailsSendsLimit(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/intelligent-tracker/process-emails", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"success":true,"results":{"processed_emails":5,"created_applications":2,
			"errors":[{"email_id":"e9","error":"unparseable"}]}}`))
	})

	res, err := c.ProcessEmails(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, 5, res.Results.ProcessedEmails)
	require.Len(t, res.Results.Errors, 1)
	assert.Equal(t, "e9", res.Results.Errors[0].EmailID)
}

func TestCreateApplicationRoundTrip(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"a9","company_name":"Acme","job_title":"Dev","status":"APPLIED"}`))
	})

	rec, err := c.CreateApplication(context.Background(), types.CreateApplicationRequest{
		CompanyName: "Acme", JobTitle: "Dev",
	})
	require.NoError(t, err)
	assert.Equal(t, "a9", rec.ID)
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})
	assert.NoError(t, c.DeleteApplication(context.Background(), "a1"))
}

func TestUpdateStatusPath(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/job-applications/a1/status", r.URL.Path)
		w.Write([]byte(`{"id":"a1","company_name":"Acme","job_title":"Dev","status":"INTERVIEW"}`))
	})

	rec, err := c.UpdateStatus(context.Background(), "a1", types.StatusInterview, "")
	require.NoError(t, err)
	assert.Equal(t, types.StatusInterview, rec.Status)
}

func TestLinkEmailPath(t *testing.T) {
	c := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails/e1/link", r.URL.Path)
		w.Write([]byte(`{"id":"e1","subject":"hi","application_id":"a1"}`))
	})

	rec, err := c.LinkEmail(context.Background(), "e1", "a1")
	require.NoError(t, err)
	assert.Equal(t, "a1", rec.ApplicationID)
}
