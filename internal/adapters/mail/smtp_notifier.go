package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

const smtpsPort = 465

var surveyTemplate = template.Must(template.New("survey").Parse(`<h1>New Survey: {{.Title}}</h1>
<p>A new survey is available for you to complete.</p>
<a href="{{.Link}}">Click here to take the survey</a>
`))

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AppURL   string
}

// Sender is the part of the go-mail client the notifier needs.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
}

type SMTPNotifier struct {
	sender Sender
	from   string
	appURL string
}

func NewSMTPNotifier(cfg Config) (*SMTPNotifier, error) {
	opts := []gomail.Option{gomail.WithPort(cfg.Port)}
	if cfg.Port == smtpsPort {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPortPolicy(gomail.TLSOpportunistic))
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return NewNotifier(client, cfg.From, cfg.AppURL), nil
}

func NewNotifier(sender Sender, from, appURL string) *SMTPNotifier {
	return &SMTPNotifier{
		sender: sender,
		from:   from,
		appURL: strings.TrimRight(appURL, "/"),
	}
}

var _ ports.Notifier = (*SMTPNotifier)(nil)

func (n *SMTPNotifier) NotifySurvey(ctx context.Context, recipient string, surveyTitle string, surveyID uuid.UUID) error {
	msg, err := n.message(recipient, surveyTitle, surveyID)
	if err != nil {
		return err
	}
	if err := n.sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", recipient, err)
	}
	return nil
}

func (n *SMTPNotifier) message(recipient, surveyTitle string, surveyID uuid.UUID) (*gomail.Msg, error) {
	body, err := n.renderBody(surveyTitle, surveyID)
	if err != nil {
		return nil, err
	}

	msg := gomail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject("New Survey Available: " + surveyTitle)
	msg.SetBodyString(gomail.TypeTextHTML, body)
	return msg, nil
}

func (n *SMTPNotifier) renderBody(surveyTitle string, surveyID uuid.UUID) (string, error) {
	var body bytes.Buffer
	err := surveyTemplate.Execute(&body, struct {
		Title string
		Link  string
	}{
		Title: surveyTitle,
		Link:  fmt.Sprintf("%s/surveys/%s", n.appURL, surveyID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render mail body: %w", err)
	}
	return body.String(), nil
}
