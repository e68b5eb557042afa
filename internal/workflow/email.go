package workflow

import (
	"context"
	"fmt"

	"github.com/ertan/cvscout/internal/domain"
	"github.com/ertan/cvscout/internal/logger"
)

// EmailGenerator produces personalized email content for one candidate.
type EmailGenerator interface {
	GenerateEmail(ctx context.Context, jobTitle, candidateName string, disposition domain.Disposition) (*domain.GeneratedEmail, error)
}

// Dispatcher delivers a generated email and returns a human-readable
// confirmation string.
type Dispatcher interface {
	Dispatch(ctx context.Context, recipient string, email *domain.GeneratedEmail) (string, error)
}

// MockDispatcher is the only dispatcher implementation: it records the
// intended recipient, subject, and body in the log and confirms. No real
// transport is involved.
type MockDispatcher struct{}

// NewMockDispatcher creates a mock dispatcher.
func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{}
}

// Dispatch logs the email instead of sending it.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - recipient: candidate email address.
//   - email: generated subject and body.
//
// Returns:
//   - string: confirmation message for the caller.
//   - error: always nil.
func (d *MockDispatcher) Dispatch(ctx context.Context, recipient string, email *domain.GeneratedEmail) (string, error) {
	logger.FromContext(ctx).WithFields(logger.Fields{
		"recipient": recipient,
		"subject":   email.Subject,
	}).Infof("Mock email dispatch:\nTO: %s\nSUBJECT: %s\nBODY:\n%s", recipient, email.Subject, email.Body)

	return fmt.Sprintf("Mock email successfully generated for %s.", recipient), nil
}

// EmailPipeline generates and dispatches outcome emails for the candidates
// of one job: invitations for the positive list, rejections for the
// negative list.
type EmailPipeline struct {
	generator  EmailGenerator
	dispatcher Dispatcher
}

// NewEmailPipeline creates an email pipeline.
// Parameters:
//   - generator: email content generator.
//   - dispatcher: email dispatcher (the mock in this system).
//
// Returns:
//   - *EmailPipeline: initialized pipeline.
func NewEmailPipeline(generator EmailGenerator, dispatcher Dispatcher) *EmailPipeline {
	return &EmailPipeline{
		generator:  generator,
		dispatcher: dispatcher,
	}
}

// Run processes every candidate best-effort and returns one status string
// per candidate: all positives first in input order, then all negatives in
// input order. A generation or dispatch fault for one candidate substitutes
// a visible placeholder and never blocks the others, so the output length
// always equals len(positive)+len(negative).
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - jobTitle: role name used in the email content.
//   - positive: candidates to invite.
//   - negative: candidates to reject.
//
// Returns:
//   - []string: per-candidate status messages in processing order.
func (p *EmailPipeline) Run(ctx context.Context, jobTitle string, positive, negative []domain.CandidateContact) []string {
	logger.CtxInfo(ctx, "Starting email run: job=%q, invites=%d, rejections=%d", jobTitle, len(positive), len(negative))

	statuses := make([]string, 0, len(positive)+len(negative))
	for _, candidate := range positive {
		statuses = append(statuses, p.process(ctx, jobTitle, candidate, domain.DispositionPositive))
	}
	for _, candidate := range negative {
		statuses = append(statuses, p.process(ctx, jobTitle, candidate, domain.DispositionNegative))
	}

	logger.CtxInfo(ctx, "Email run complete: %d statuses", len(statuses))
	return statuses
}

// process handles one candidate end to end and never propagates a fault.
func (p *EmailPipeline) process(ctx context.Context, jobTitle string, candidate domain.CandidateContact, disposition domain.Disposition) string {
	email, err := p.generator.GenerateEmail(ctx, jobTitle, candidate.FullName, disposition)
	if err != nil {
		logger.CtxError(ctx, "Email generation failed for %s: %v", candidate.Email, err)
		email = &domain.GeneratedEmail{
			Subject: "Generation Error",
			Body:    fmt.Sprintf("Could not generate email content. Error: %v", err),
		}
	}

	status, err := p.dispatcher.Dispatch(ctx, candidate.Email, email)
	if err != nil {
		logger.CtxError(ctx, "Email dispatch failed for %s: %v", candidate.Email, err)
		return fmt.Sprintf("Failed to dispatch email for %s.", candidate.Email)
	}
	return status
}
