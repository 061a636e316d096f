package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mld08/planning-app/pkg/core/model"
)

// EmailClient sends a single email. Satisfied by gmailclient.Client.
type EmailClient interface {
	SendEmail(to []string, subject, body string) error
}

// Sender mails the weekly roster to the configured recipients
type Sender struct {
	client     EmailClient
	recipients []string
	logger     *zap.Logger
}

// NewSender creates a roster notification sender
func NewSender(client EmailClient, recipients []string, logger *zap.Logger) *Sender {
	return &Sender{
		client:     client,
		recipients: recipients,
		logger:     logger,
	}
}

// NotifyRoster sends the roster summary to the configured recipients, then
// mails each assigned agent their personal schedule. A failed personal email
// is logged and does not block the remaining sends.
func (s *Sender) NotifyRoster(_ context.Context, ros *model.Roster, assignments []model.Assignment, agents []*model.Agent) error {
	if len(s.recipients) == 0 {
		s.logger.Warn("No notification recipients configured, skipping roster email")
		return nil
	}

	subject, body := BuildRosterEmail(ros, assignments, agents)

	s.logger.Info("Sending roster notification",
		zap.String("roster_id", ros.ID),
		zap.Int("recipients", len(s.recipients)))

	if err := s.client.SendEmail(s.recipients, subject, body); err != nil {
		return fmt.Errorf("failed to send roster email: %w", err)
	}

	assigned := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		assigned[a.AgentID] = true
	}

	for _, agent := range agents {
		if !assigned[agent.ID] || agent.Email == "" {
			continue
		}
		subject, body := BuildAgentEmail(agent, ros, assignments)
		if err := s.client.SendEmail([]string{agent.Email}, subject, body); err != nil {
			s.logger.Error("Failed to send agent schedule email",
				zap.String("agent_id", agent.ID),
				zap.Error(err))
		}
	}

	return nil
}
