// Package supabase habla con un proyecto Supabase: PostgREST para las tablas
// y GoTrue para verificar tokens. Cada request reenvía el token del usuario
// para que apliquen las políticas RLS.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-care/internal/domain/appointments"
	"pet-care/internal/domain/diary"
	"pet-care/internal/domain/medicalrecords"
	"pet-care/internal/domain/pets"
	"pet-care/internal/ports/auth"
	"pet-care/internal/recordstore"

	"github.com/go-resty/resty/v2"
)

var (
	ErrNotConfigured = errors.New("supabase client not configured")
	ErrUnauthorized  = errors.New("supabase unauthorized")
	ErrUpstream      = errors.New("supabase upstream error")
)

const restPrefix = "/rest/v1/"

type Config struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

type Client struct {
	http    *resty.Client
	anonKey string
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	key := strings.TrimSpace(cfg.AnonKey)
	if base == "" || key == "" {
		return nil, ErrNotConfigured
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid supabase url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(base).
		SetHeader("apikey", key).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Client{http: client, anonKey: key}, nil
}

func (c *Client) Pets() pets.Repository                 { return &petRepo{c} }
func (c *Client) Records() medicalrecords.Repository    { return &recordRepo{c} }
func (c *Client) Diary() diary.Repository               { return &diaryRepo{c} }
func (c *Client) Appointments() appointments.Repository { return &appointmentRepo{c} }

// request arma un request con el token del usuario si viaja en el contexto;
// sin token se usa la anon key y RLS solo deja ver lo público.
func (c *Client) request(ctx context.Context) *resty.Request {
	bearer := c.anonKey
	if tok, ok := auth.TokenFrom(ctx); ok {
		bearer = tok
	}
	return c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+bearer)
}

// selectRows hace GET sobre la tabla y decodifica el array en out.
func (c *Client) selectRows(ctx context.Context, q *query, out any) error {
	resp, err := c.request(ctx).
		SetQueryParamsFromValues(q.values()).
		Get(restPrefix + q.table)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return decode(resp, out)
}

func (c *Client) insert(ctx context.Context, table string, row any) error {
	resp, err := c.request(ctx).
		SetHeader("Prefer", "return=minimal").
		SetBody(row).
		Post(restPrefix + table)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return decode(resp, nil)
}

// patch devuelve las filas modificadas; vacío significa que el id no existe
// (o que RLS no lo deja ver).
func (c *Client) patch(ctx context.Context, q *query, body map[string]any, out any) error {
	resp, err := c.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParamsFromValues(q.values()).
		SetBody(body).
		Patch(restPrefix + q.table)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return decode(resp, out)
}

func (c *Client) deleteByID(ctx context.Context, table, id string) error {
	q := from(table).sel("id").eq("id", id)
	resp, err := c.request(ctx).
		SetHeader("Prefer", "return=representation").
		SetQueryParamsFromValues(q.values()).
		Delete(restPrefix + table)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	var deleted []struct {
		ID string `json:"id"`
	}
	if err := decode(resp, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return recordstore.ErrNotFound
	}
	return nil
}

func decode(resp *resty.Response, out any) error {
	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, strings.TrimSpace(resp.String()))
	case code < 200 || code > 299:
		return fmt.Errorf("%w: status=%d body=%s", ErrUpstream, code, strings.TrimSpace(resp.String()))
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: invalid json: %v", ErrUpstream, err)
	}
	return nil
}
