package api

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"quote-wizard/pkg/format"
	"quote-wizard/pkg/models"
	"quote-wizard/pkg/quote"
	"quote-wizard/pkg/services"
	"quote-wizard/pkg/wizard"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handlers contains all HTTP handlers for the wizard and its JSON API
type Handlers struct {
	quoter            wizard.Quoter
	submissionService services.SubmissionService
	redirectURL       string
	now               func() time.Time
}

// NewHandlers creates a new Handlers instance
func NewHandlers(quoter wizard.Quoter, submissionService services.SubmissionService, redirectURL string) *Handlers {
	return &Handlers{
		quoter:            quoter,
		submissionService: submissionService,
		redirectURL:       redirectURL,
		now:               time.Now,
	}
}

// Templates parses the embedded wizard pages.
func Templates() *template.Template {
	funcs := template.FuncMap{
		"ringgit": format.Ringgit,
		"maxAge":  func() int { return quote.MaxEligibleAge },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// Register installs the templates and every route on r.
func (h *Handlers) Register(r *gin.Engine) {
	r.SetHTMLTemplate(Templates())

	r.GET("/", h.ShowBasics)
	r.POST("/quote", h.CalculateQuote)
	r.POST("/contact", h.ShowContact)
	r.POST("/back/input", h.BackToInput)
	r.POST("/back/quote", h.BackToQuote)
	r.POST("/submit", h.Submit)

	api := r.Group("/api")
	api.POST("/quote", h.QuoteJSON)
	api.POST("/submissions", h.SubmitJSON)

	r.GET("/health", h.HealthCheck)
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

type pageData struct {
	Step     string
	Progress int
	Form     models.FormData
	Quote    *models.QuoteResult
	Errors   map[string]string
	Today    string
	Year     int
}

func (h *Handlers) render(c *gin.Context, status int, s wizard.State, errs map[string]string) {
	now := h.now()
	c.HTML(status, "layout.html", pageData{
		Step:     s.Step.String(),
		Progress: s.Step.Progress(),
		Form:     s.Form,
		Quote:    s.Quote,
		Errors:   errs,
		Today:    now.Format("2006-01-02"),
		Year:     now.Year(),
	})
}

func (h *Handlers) ShowBasics(c *gin.Context) {
	h.render(c, http.StatusOK, wizard.New(), nil)
}

// CalculateQuote handles the first step
func (h *Handlers) CalculateQuote(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}
	state := wizard.New().WithForm(form)

	var basics models.BasicsRequest
	if errs := fieldErrors(c.ShouldBind(&basics)); len(errs) > 0 {
		h.render(c, http.StatusUnprocessableEntity, state, errs)
		return
	}
	if _, _, _, err := quote.ParseBirthday(form.Birthday); err != nil {
		h.render(c, http.StatusUnprocessableEntity, state, map[string]string{"birthday": "Enter a valid date"})
		return
	}

	next, err := state.Calculate(h.quoter)
	if err != nil {
		h.render(c, http.StatusUnprocessableEntity, next, formError(err))
		return
	}
	h.render(c, http.StatusOK, next, nil)
}

// ShowContact moves from an eligible quote to the contact form
func (h *Handlers) ShowContact(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	state, err := wizard.Resume(form, wizard.CollectingContact, h.quoter)
	if err != nil {
		h.render(c, http.StatusUnprocessableEntity, state, formError(err))
		return
	}
	h.render(c, http.StatusOK, state, nil)
}

func (h *Handlers) BackToInput(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	state, _ := wizard.Resume(form, wizard.ShowingQuote, h.quoter)
	h.render(c, http.StatusOK, state.BackToInput(), nil)
}

func (h *Handlers) BackToQuote(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	state, err := wizard.Resume(form, wizard.CollectingContact, h.quoter)
	if err == nil {
		state, err = state.BackToQuote()
	}
	if err != nil {
		h.render(c, http.StatusUnprocessableEntity, state, formError(err))
		return
	}
	h.render(c, http.StatusOK, state, nil)
}

// Submit forwards the lead and redirects whatever happens to the delivery
func (h *Handlers) Submit(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	state, err := wizard.Resume(form, wizard.CollectingContact, h.quoter)
	if err != nil {
		h.render(c, http.StatusUnprocessableEntity, state, formError(err))
		return
	}

	var req models.SubmissionRequest
	if errs := fieldErrors(c.ShouldBind(&req)); len(errs) > 0 {
		h.render(c, http.StatusUnprocessableEntity, state, errs)
		return
	}
	if err := state.ReadyToSubmit(); err != nil {
		h.render(c, http.StatusUnprocessableEntity, state, formError(err))
		return
	}

	h.submissionService.Submit(state.Form, *state.Quote)
	c.Redirect(http.StatusSeeOther, h.redirectURL)
}

// QuoteJSON quotes a birthday for script front ends
func (h *Handlers) QuoteJSON(c *gin.Context) {
	var req models.BasicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Error parsing quote request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "fields": fieldErrors(err)})
		return
	}
	if _, _, _, err := quote.ParseBirthday(req.Birthday); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "fields": map[string]string{"birthday": "Enter a valid date"}})
		return
	}

	c.JSON(http.StatusOK, h.quoter.CalculateQuote(req.Birthday))
}

// SubmitJSON accepts a complete lead for script front ends. The caller is
// expected to navigate to redirectUrl as soon as it gets the response.
func (h *Handlers) SubmitJSON(c *gin.Context) {
	var req models.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("Error parsing submission: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "fields": fieldErrors(err)})
		return
	}

	state, err := wizard.Resume(req.Form(), wizard.CollectingContact, h.quoter)
	if err == nil {
		err = state.ReadyToSubmit()
	}
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, wizard.ErrNotEligible) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	h.submissionService.Submit(state.Form, *state.Quote)
	c.JSON(http.StatusAccepted, gin.H{
		"status":      "accepted",
		"redirectUrl": h.redirectURL,
	})
}

func (h *Handlers) bindForm(c *gin.Context) (models.FormData, bool) {
	var form models.FormData
	if err := c.ShouldBind(&form); err != nil {
		log.Printf("Error reading form: %v", err)
		h.render(c, http.StatusBadRequest, wizard.New(), map[string]string{"form": "Error reading request"})
		return form, false
	}
	return form, true
}

var fieldNames = map[string]string{
	"Birthday":     "birthday",
	"Gender":       "gender",
	"Smoker":       "smoker",
	"FullName":     "fullName",
	"MobileNumber": "mobileNumber",
	"Email":        "email",
}

// fieldErrors maps binding failures to per-field messages keyed by form name.
func fieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"form": "Invalid request"}
	}

	errs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name, ok := fieldNames[fe.Field()]
		if !ok {
			name = fe.Field()
		}
		switch fe.Tag() {
		case "required":
			errs[name] = "This field is required"
		case "oneof":
			errs[name] = "Select one of the options"
		default:
			errs[name] = "Invalid value"
		}
	}
	return errs
}

func formError(err error) map[string]string {
	switch {
	case errors.Is(err, wizard.ErrIncompleteBasics):
		return map[string]string{"form": "Please complete your date of birth, gender and smoker status."}
	case errors.Is(err, wizard.ErrIncompleteContact):
		return map[string]string{"form": "Please complete your name, mobile number and email."}
	case errors.Is(err, wizard.ErrNotEligible):
		return map[string]string{"form": "This plan is not available for the age provided."}
	default:
		return map[string]string{"form": "Something went wrong, please start again."}
	}
}
