package sink

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/c9s/signalcore/pkg/types"
)

type SlackSink struct {
	client  *slack.Client
	channel string
}

func NewSlackSink(client *slack.Client, channel string) *SlackSink {
	return &SlackSink{
		client:  client,
		channel: channel,
	}
}

func (s *SlackSink) Name() string {
	return "slack"
}

func (s *SlackSink) EmitSignal(ctx context.Context, signal *types.Signal) error {
	attachment := slack.Attachment{
		Title: fmt.Sprintf("%s signal: %s", signal.StrategyID, signal.Side),
		Color: sideColor(signal.Side),
		Fields: []slack.AttachmentField{
			{Title: "Subscription", Value: signal.SubscriptionKey.String(), Short: true},
			{Title: "Trigger", Value: signal.TriggerReason, Short: true},
			{Title: "Computed At", Value: signal.ComputedAt.String(), Short: false},
		},
	}

	_, _, err := s.client.PostMessageContext(ctx, s.channel,
		slack.MsgOptionAttachments(attachment))
	return err
}

func sideColor(side types.SignalSide) string {
	switch side {
	case types.SignalSideLong:
		return "good"
	case types.SignalSideShort:
		return "danger"
	}
	return "#808080"
}
