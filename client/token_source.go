package client

import (
	"context"

	"github.com/suryanavv/ims/auth"
	"github.com/suryanavv/ims/token"
	"golang.org/x/oauth2"
)

// TokenSource adapts a TokenProvider to oauth2.TokenSource. Each call returns
// the held token, refreshing once when none is held.
func TokenSource(ctx context.Context, tokens TokenProvider) oauth2.TokenSource {
	return &providerTokenSource{ctx: ctx, tokens: tokens}
}

type providerTokenSource struct {
	ctx    context.Context
	tokens TokenProvider
}

func (s *providerTokenSource) Token() (*oauth2.Token, error) {
	tok := s.tokens.Token(s.ctx)
	if tok == "" {
		tok = s.tokens.RefreshToken(s.ctx)
	}
	if tok == "" {
		return nil, &auth.AuthenticationError{Message: auth.NotAuthenticatedMessage}
	}

	t := &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}
	if exp, ok := token.Expiry(tok); ok {
		t.Expiry = exp
	}
	return t, nil
}
