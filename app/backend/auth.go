// SPDX-FileCopyrightText: Copyright (c) 2023-2026, LumenMatch, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/lumenmatch/conncheck/app/config"
)

// Session is the authenticated user session held by the mobile app.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	UserID       string `json:"user_id,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
}

// AuthClient exposes session lookup and refresh. GetSession returning
// (nil, nil) means there is no active session; that is not an error.
type AuthClient interface {
	GetSession(ctx context.Context) (*Session, error)
	RefreshSession(ctx context.Context) (*Session, error)
}

// GotrueClient is an AuthClient backed by the backend's auth API. It caches
// the session material it was seeded with and swaps it on refresh.
type GotrueClient struct {
	host   string
	apiKey string
	client *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// NewGotrueClient builds an auth client seeded with whatever session material
// the settings carry; both tokens may be empty.
func NewGotrueClient(cfg *config.Backend, client *http.Client) *GotrueClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &GotrueClient{
		host:         strings.TrimRight(cfg.Host, "/"),
		apiKey:       cfg.APIKey,
		client:       client,
		accessToken:  cfg.AccessToken,
		refreshToken: cfg.RefreshToken,
	}
}

// GetSession validates the cached access token against the auth API.
// No cached token or a rejected token yields (nil, nil).
func (c *GotrueClient) GetSession(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	token := c.accessToken
	refresh := c.refreshToken
	c.mu.Unlock()

	if token == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/auth/v1/user", nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create session request")
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "session request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var user struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, errors.Wrap(err, "failed to decode session response")
		}
		return &Session{AccessToken: token, RefreshToken: refresh, UserID: user.ID}, nil
	case resp.StatusCode == http.StatusUnauthorized:
		// expired or revoked token is the same as having no session
		return nil, nil
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("auth api returned %d: %s", resp.StatusCode, string(b))
	}
}

// RefreshSession exchanges the cached refresh token for a new session and
// swaps the cached material on success.
func (c *GotrueClient) RefreshSession(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()

	if refresh == "" {
		return nil, errors.New("no refresh token available")
	}

	body, err := json.Marshal(map[string]string{"refresh_token": refresh})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode refresh request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.host+"/auth/v1/token?grant_type=refresh_token", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create refresh request")
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "refresh request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Errorf("auth api returned %d: %s", resp.StatusCode, string(b))
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, errors.Wrap(err, "failed to decode refresh response")
	}

	c.mu.Lock()
	c.accessToken = session.AccessToken
	if session.RefreshToken != "" {
		c.refreshToken = session.RefreshToken
	}
	c.mu.Unlock()

	return &session, nil
}
