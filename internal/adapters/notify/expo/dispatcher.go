package expo

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"vetco-api/internal/platform/httpclient"
	"vetco-api/internal/platform/logger"
	"vetco-api/internal/ports/auth"
	"vetco-api/internal/ports/notify"
)

const DefaultPushURL = "https://exp.host/--/api/v2/push/send"

// TokenSource resuelve los push tokens registrados de un principal.
// Lo implementa devices.Service.
type TokenSource interface {
	PushTokens(ctx context.Context, kind auth.ActorKind, ownerID string) ([]string, error)
}

// Dispatcher implementa notify.Dispatcher contra la API de push de Expo.
// Best-effort: el caller ya trata todo error como no fatal.
type Dispatcher struct {
	client *httpclient.Client
	url    string
	tokens TokenSource
	log    logger.Logger
}

func NewDispatcher(client *httpclient.Client, url string, tokens TokenSource, log logger.Logger) *Dispatcher {
	if client == nil {
		client = httpclient.New(0)
	}
	if strings.TrimSpace(url) == "" {
		url = DefaultPushURL
	}
	return &Dispatcher{client: client, url: url, tokens: tokens, log: log}
}

type pushMessage struct {
	To    []string          `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

func (d *Dispatcher) Dispatch(ctx context.Context, n notify.Notification) error {
	if d == nil || d.tokens == nil {
		return errors.New("expo: dispatcher not configured")
	}

	tokens, err := d.tokens.PushTokens(ctx, n.RecipientKind, n.RecipientID)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		// Sin dispositivos registrados no hay nada que enviar; no es error.
		if d.log != nil {
			d.log.Debug("no push tokens for recipient", map[string]any{
				"recipient_kind": string(n.RecipientKind),
				"recipient_id":   n.RecipientID,
			})
		}
		return nil
	}

	msg := pushMessage{
		To:    tokens,
		Title: n.Title,
		Body:  n.Body,
		Data:  n.Data,
	}

	return d.client.DoJSON(ctx, http.MethodPost, d.url, nil, msg, nil)
}
