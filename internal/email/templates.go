package email

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v3"

	"newsmarketplace/internal/config"
	"newsmarketplace/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutTemplate = "layout"

// Templates renders the notification emails.
type Templates struct {
	cfg    *config.Config
	engine *html.Engine
}

// NewTemplates loads the embedded email templates.
func NewTemplates(cfg *config.Config) (*Templates, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	return &Templates{cfg: cfg, engine: engine}, nil
}

// Message is a rendered email.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

type templateData struct {
	Subject       string
	SiteTitle     string
	BaseURL       string
	SupportURL    string
	RecipientName string
	KindLabel     string
	DisplayName   string
	ID            int64
	Reason        string
	Comments      string
	ViewURL       string
}

func (t *Templates) data(subject string, kind models.Kind, e models.Entity) templateData {
	return templateData{
		Subject:     subject,
		SiteTitle:   t.cfg.SiteTitle,
		BaseURL:     t.cfg.BaseURL,
		SupportURL:  t.cfg.SupportURL,
		KindLabel:   strings.ToLower(kind.Label),
		DisplayName: e.DisplayName(),
		ID:          e.Record().ID,
	}
}

func (t *Templates) render(name string, d templateData) (string, error) {
	var buf bytes.Buffer
	if err := t.engine.Render(&buf, name, d, layoutTemplate); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}

// Approved renders the email sent to a submitter whose record was approved.
func (t *Templates) Approved(kind models.Kind, e models.Entity, recipient *models.User, comments string) (*Message, error) {
	subject := fmt.Sprintf("[%s] Your %s has been approved", t.cfg.SiteTitle, strings.ToLower(kind.Label))

	d := t.data(subject, kind, e)
	d.RecipientName = recipient.FullName()
	d.Comments = comments
	d.ViewURL = fmt.Sprintf("%s/%s/%d", t.cfg.BaseURL, kind.Slug, d.ID)

	body, err := t.render("approved", d)
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Hello %s,\n\n", d.RecipientName)
	fmt.Fprintf(&text, "Your %s %q has been approved and is now live on %s.\n", d.KindLabel, d.DisplayName, d.SiteTitle)
	if comments != "" {
		fmt.Fprintf(&text, "\nComments from our team:\n%s\n", comments)
	}
	fmt.Fprintf(&text, "\nView it at: %s\n", d.ViewURL)

	return &Message{Subject: subject, HTML: body, Text: text.String()}, nil
}

// Rejected renders the email sent to a submitter whose record was rejected.
func (t *Templates) Rejected(kind models.Kind, e models.Entity, recipient *models.User, reason, comments string) (*Message, error) {
	subject := fmt.Sprintf("[%s] Update on your %s", t.cfg.SiteTitle, strings.ToLower(kind.Label))

	d := t.data(subject, kind, e)
	d.RecipientName = recipient.FullName()
	d.Reason = reason
	d.Comments = comments
	d.ViewURL = fmt.Sprintf("%s/%s/my", t.cfg.BaseURL, kind.Slug)

	body, err := t.render("rejected", d)
	if err != nil {
		return nil, err
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Hello %s,\n\n", d.RecipientName)
	fmt.Fprintf(&text, "After review, your %s %q was not approved.\n\n", d.KindLabel, d.DisplayName)
	fmt.Fprintf(&text, "Reason: %s\n", reason)
	if comments != "" {
		fmt.Fprintf(&text, "\nComments from our team:\n%s\n", comments)
	}
	fmt.Fprintf(&text, "\nYour submissions: %s\n", d.ViewURL)

	return &Message{Subject: subject, HTML: body, Text: text.String()}, nil
}

// Submitted renders the email sent to moderators about a new submission.
func (t *Templates) Submitted(kind models.Kind, e models.Entity) (*Message, error) {
	subject := fmt.Sprintf("[%s] New %s pending review: %s", t.cfg.SiteTitle, strings.ToLower(kind.Label), e.DisplayName())

	d := t.data(subject, kind, e)
	d.ViewURL = fmt.Sprintf("%s/admin/%s?status=pending", t.cfg.BaseURL, kind.Slug)

	body, err := t.render("submitted", d)
	if err != nil {
		return nil, err
	}

	text := fmt.Sprintf("A new %s has been submitted and requires review.\n\nName: %s\nID: %d\n\nReview queue: %s\n",
		d.KindLabel, d.DisplayName, d.ID, d.ViewURL)

	return &Message{Subject: subject, HTML: body, Text: text}, nil
}
