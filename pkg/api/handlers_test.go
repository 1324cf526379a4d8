package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quote-wizard/pkg/models"
	"quote-wizard/pkg/quote"
)

const redirectURL = "https://example.com/thank-you"

var today = time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)

type submitted struct {
	form  models.FormData
	quote models.QuoteResult
}

type fakeSubmissions struct {
	mu    sync.Mutex
	leads []submitted
}

func (f *fakeSubmissions) Submit(form models.FormData, q models.QuoteResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.leads = append(f.leads, submitted{form, q})
}

func (f *fakeSubmissions) Wait() {}

func setup(t *testing.T) (*gin.Engine, *fakeSubmissions) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := quote.NewEngine(quote.DefaultPricingTable(),
		quote.WithClock(func() time.Time { return today }),
		quote.WithLocation(time.UTC),
	)
	subs := &fakeSubmissions{}
	h := NewHandlers(engine, subs, redirectURL)
	h.now = func() time.Time { return today }

	r := gin.New()
	h.Register(r)
	return r, subs
}

func completeForm() url.Values {
	return url.Values{
		"birthday":     {"1990-03-21"},
		"gender":       {"Female"},
		"smoker":       {"No"},
		"fullName":     {"Nur Aisyah"},
		"mobileNumber": {"0123456789"},
		"email":        {"aisyah@example.com"},
	}
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	r, _ := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestShowBasics(t *testing.T) {
	r, _ := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Get Your Instant Quote")
	assert.Contains(t, body, `max="2026-10-14"`)
	assert.Contains(t, body, "width: 33%")
}

func TestCalculateQuoteEligible(t *testing.T) {
	r, _ := setup(t)

	w := postForm(r, "/quote", completeForm())

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Age 36 Plan")
	assert.Contains(t, body, "RM 163")
	assert.Contains(t, body, "RM 5,000,000")
	assert.Contains(t, body, "Co-payment: 5% or capped RM 1,000 per year")
	assert.Contains(t, body, "width: 66%")
	assert.Contains(t, body, `action="/contact"`)
}

func TestCalculateQuoteIneligible(t *testing.T) {
	r, _ := setup(t)

	form := completeForm()
	form.Set("birthday", "1950-01-01")
	w := postForm(r, "/quote", form)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Not Eligible")
	assert.Contains(t, body, "(76 years old)")
	assert.Contains(t, body, "aged 0 to 70")
	assert.NotContains(t, body, `action="/contact"`)
}

func TestCalculateQuoteValidation(t *testing.T) {
	r, _ := setup(t)

	form := completeForm()
	form.Del("gender")
	w := postForm(r, "/quote", form)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Get Your Instant Quote")
	assert.Contains(t, w.Body.String(), "This field is required")

	form = completeForm()
	form.Set("smoker", "Sometimes")
	w = postForm(r, "/quote", form)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Select one of the options")

	form = completeForm()
	form.Set("birthday", "21/03/1990")
	w = postForm(r, "/quote", form)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Enter a valid date")
}

func TestShowContact(t *testing.T) {
	r, _ := setup(t)

	w := postForm(r, "/contact", completeForm())

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Final Step")
	assert.Contains(t, body, `value="Nur Aisyah"`)
	assert.Contains(t, body, "width: 100%")
}

func TestShowContactIneligible(t *testing.T) {
	r, _ := setup(t)

	form := completeForm()
	form.Set("birthday", "2027-01-01")
	w := postForm(r, "/contact", form)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Not Eligible")
}

func TestBackNavigation(t *testing.T) {
	r, _ := setup(t)

	w := postForm(r, "/back/input", completeForm())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Get Your Instant Quote")
	assert.Contains(t, w.Body.String(), `value="1990-03-21"`)

	w = postForm(r, "/back/quote", completeForm())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Your Estimated Premium")
}

func TestSubmitRedirects(t *testing.T) {
	r, subs := setup(t)

	w := postForm(r, "/submit", completeForm())

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, redirectURL, w.Header().Get("Location"))

	require.Len(t, subs.leads, 1)
	lead := subs.leads[0]
	assert.Equal(t, "Nur Aisyah", lead.form.FullName)
	assert.Equal(t, models.GenderFemale, lead.form.Gender)
	assert.Equal(t, 36, lead.quote.Age)
	assert.Equal(t, 163, lead.quote.Premium)
	assert.True(t, lead.quote.Eligible)
}

func TestSubmitRequiresContact(t *testing.T) {
	r, subs := setup(t)

	form := completeForm()
	form.Set("email", "")
	w := postForm(r, "/submit", form)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Final Step")
	assert.Contains(t, w.Body.String(), "This field is required")

	form = completeForm()
	form.Set("fullName", "   ")
	w = postForm(r, "/submit", form)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	assert.Empty(t, subs.leads)
}

func TestSubmitIneligible(t *testing.T) {
	r, subs := setup(t)

	form := completeForm()
	form.Set("birthday", "1940-06-01")
	w := postForm(r, "/submit", form)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, subs.leads)
}

func TestQuoteJSON(t *testing.T) {
	r, _ := setup(t)

	w := postJSON(r, "/api/quote", `{"birthday":"1986-10-14","gender":"Male","smoker":"Yes"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result models.QuoteResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 40, result.Age)
	assert.Equal(t, 207, result.Premium)
	assert.True(t, result.Eligible)
	require.NotNil(t, result.Benefits)
	assert.Equal(t, "RM 2,000,000", result.Benefits.AnnualLimit)
	assert.Equal(t, "Deductible: RM 5,000 per year", result.Benefits.ExtraDetails)
}

func TestQuoteJSONIneligibleOmitsBenefits(t *testing.T) {
	r, _ := setup(t)

	w := postJSON(r, "/api/quote", `{"birthday":"1955-10-14","gender":"Female","smoker":"No"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"age":71,"premium":0,"eligible":false}`, w.Body.String())
}

func TestQuoteJSONBadRequest(t *testing.T) {
	r, _ := setup(t)

	assert.Equal(t, http.StatusBadRequest, postJSON(r, "/api/quote", `{"birthday":`).Code)
	assert.Equal(t, http.StatusBadRequest, postJSON(r, "/api/quote", `{"birthday":"1990-01-01"}`).Code)
	assert.Equal(t, http.StatusBadRequest,
		postJSON(r, "/api/quote", `{"birthday":"soon","gender":"Male","smoker":"No"}`).Code)
}

func TestSubmitJSON(t *testing.T) {
	r, subs := setup(t)

	body := `{"birthday":"1990-03-21","gender":"Female","smoker":"No",` +
		`"fullName":"Nur Aisyah","mobileNumber":"0123456789","email":"aisyah@example.com"}`
	w := postJSON(r, "/api/submissions", body)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.JSONEq(t, `{"status":"accepted","redirectUrl":"`+redirectURL+`"}`, w.Body.String())
	require.Len(t, subs.leads, 1)
	assert.Equal(t, 163, subs.leads[0].quote.Premium)
}

func TestSubmitJSONRejects(t *testing.T) {
	r, subs := setup(t)

	w := postJSON(r, "/api/submissions", `{"birthday":"1990-03-21","gender":"Female","smoker":"No"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body := `{"birthday":"1940-03-21","gender":"Female","smoker":"No",` +
		`"fullName":"Nur Aisyah","mobileNumber":"0123456789","email":"aisyah@example.com"}`
	w = postJSON(r, "/api/submissions", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	assert.Empty(t, subs.leads)
}
