package services

import (
	"log"
	"sync"
	"time"

	"quote-wizard/pkg/clients/webhook"
	"quote-wizard/pkg/models"
	"quote-wizard/pkg/utils"
)

// Matches JavaScript's Date.prototype.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// SubmissionService defines the interface for forwarding completed leads
type SubmissionService interface {
	// Submit hands the lead off for delivery and returns immediately.
	// Delivery outcome never reaches the caller.
	Submit(form models.FormData, quote models.QuoteResult)
	// Wait blocks until every delivery started so far has finished.
	Wait()
}

type submissionServiceImpl struct {
	webhookClient webhook.Client
	now           func() time.Time
	inflight      sync.WaitGroup
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(webhookClient webhook.Client, now func() time.Time) SubmissionService {
	if now == nil {
		now = time.Now
	}
	return &submissionServiceImpl{
		webhookClient: webhookClient,
		now:           now,
	}
}

// BuildPayload merges the form, the quote and a UTC timestamp.
func BuildPayload(form models.FormData, quote models.QuoteResult, at time.Time) models.SubmissionPayload {
	return models.SubmissionPayload{
		Birthday:     form.Birthday,
		Gender:       form.Gender,
		Smoker:       form.Smoker,
		FullName:     form.FullName,
		MobileNumber: form.MobileNumber,
		Email:        form.Email,
		Age:          quote.Age,
		Premium:      quote.Premium,
		Eligible:     quote.Eligible,
		Timestamp:    at.UTC().Format(timestampLayout),
	}
}

func (s *submissionServiceImpl) Submit(form models.FormData, quote models.QuoteResult) {
	payload := BuildPayload(form, quote, s.now())

	s.inflight.Add(1)
	go s.deliver(payload)
}

func (s *submissionServiceImpl) Wait() {
	s.inflight.Wait()
}

// deliver makes a single attempt. Failures are logged and dropped.
func (s *submissionServiceImpl) deliver(payload models.SubmissionPayload) {
	defer s.inflight.Done()

	contact := utils.HashContact(payload.MobileNumber)
	log.Printf("Forwarding lead %s (age %d, eligible=%v)", contact, payload.Age, payload.Eligible)

	if err := s.webhookClient.Send(payload); err != nil {
		log.Printf("Error forwarding lead %s: %v", contact, err)
		return
	}

	log.Printf("Forwarded lead %s", contact)
}
