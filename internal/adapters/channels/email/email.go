package email

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/ls1intum/Artemis-sub058/internal/domain/common/errorz"
	"github.com/ls1intum/Artemis-sub058/internal/domain/dto"
	"github.com/ls1intum/Artemis-sub058/internal/domain/entity"
	"github.com/ls1intum/Artemis-sub058/pkg/logger/types"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

//go:embed templates/*.html
var templateFS embed.FS

const defaultLangKey = "en"

type mailClient interface {
	SendNotificationEmail(to string, subject string, htmlBody string) error
}

// Adapter renders one localized email per recipient and hands it to the
// outbound mail client. A missing template, a missing localization or a
// rejected recipient is logged and skipped; it never aborts delivery to the
// remaining recipients.
type Adapter struct {
	mail      mailClient
	bundle    *i18n.Bundle
	templates map[string]*template.Template
	logger    *types.Logger
}

// DefaultBundle loads the embedded message catalogs.
func DefaultBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if _, err = bundle.LoadMessageFileFS(localeFS, "locales/"+entry.Name()); err != nil {
			return nil, fmt.Errorf("failed to load message file %s: %w", entry.Name(), err)
		}
	}
	return bundle, nil
}

func NewAdapter(mail mailClient, bundle *i18n.Bundle, logger *types.Logger) (*Adapter, error) {
	templates := make(map[string]*template.Template)

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".html")
		tmpl, errParse := template.ParseFS(templateFS, "templates/"+entry.Name())
		if errParse != nil {
			return nil, fmt.Errorf("failed to parse email template %s: %w", entry.Name(), errParse)
		}
		templates[name] = tmpl
	}

	return &Adapter{
		mail:      mail,
		bundle:    bundle,
		templates: templates,
		logger:    logger,
	}, nil
}

func (a *Adapter) Deliver(view dto.CourseNotificationDTO, recipients []entity.User) {
	for _, recipient := range recipients {
		if err := a.sendTo(view, recipient); err != nil {
			a.logger.Errorf("skipping notification email (user_id=%d, notification_id=%s): %v", recipient.ID, view.ID, err)
		}
	}
}

type bodyData struct {
	Subject    string
	Text       string
	Content    template.HTML
	Parameters map[string]string
}

func (a *Adapter) sendTo(view dto.CourseNotificationDTO, user entity.User) error {
	if user.Email == "" {
		return fmt.Errorf("user has no email address")
	}

	tmpl, ok := a.templates[view.Type]
	if !ok {
		return fmt.Errorf("%w for type %s", errorz.MissingTemplate, view.Type)
	}

	langKey := user.LangKey
	if langKey == "" {
		langKey = defaultLangKey
	}
	localizer := i18n.NewLocalizer(a.bundle, langKey)

	subject, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    view.Type + ".title",
		TemplateData: view.Parameters,
	})
	if err != nil {
		return fmt.Errorf("no title message for locale %q: %w", langKey, err)
	}
	text, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    view.Type + ".text",
		TemplateData: view.Parameters,
	})
	if err != nil {
		return fmt.Errorf("no text message for locale %q: %w", langKey, err)
	}

	var body bytes.Buffer
	err = tmpl.Execute(&body, bodyData{
		Subject:    subject,
		Text:       text,
		Content:    markdownContent(view.Parameters),
		Parameters: view.Parameters,
	})
	if err != nil {
		return fmt.Errorf("failed to render email body: %w", err)
	}

	return a.mail.SendNotificationEmail(user.Email, subject, body.String())
}

// markdownContent renders the first markdown-flagged parameter, if any.
func markdownContent(params map[string]string) template.HTML {
	for key, value := range params {
		if strings.HasSuffix(key, "MarkdownContent") {
			return renderMarkdown(value)
		}
	}
	return ""
}
