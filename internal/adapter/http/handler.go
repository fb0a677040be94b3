package http

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/tourify/internal/app"
	"github.com/neomorfeo/tourify/internal/catalog"
	"github.com/neomorfeo/tourify/internal/domain"
)

// Services bundles what the API handlers need. Now defaults to the wall clock.
type Services struct {
	Catalog      *catalog.Catalog
	Auth         *app.AuthService
	Prospects    *app.Repository[domain.Prospect]
	Transactions *app.Repository[domain.Transaction]
	Tours        *app.Repository[domain.Tour]
	Pipeline     *app.Pipeline
	Now          func() time.Time
}

// Register adds all dashboard API routes to the Huma API.
func Register(api huma.API, svc Services) {
	if svc.Now == nil {
		svc.Now = time.Now
	}

	registerAuth(api, svc)
	registerProspects(api, svc)
	registerTransactions(api, svc)
	registerTours(api, svc)
}

// requireUser rejects requests made while nobody is signed in.
func requireUser(ctx context.Context, svc Services) error {
	if _, ok := svc.Auth.CurrentUser(ctx); !ok {
		return huma.Error401Unauthorized("sign in required")
	}
	return nil
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(err error) error {
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return huma.Error422UnprocessableEntity(valErr.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	if errors.Is(err, domain.ErrAuthenticationFailed) {
		return huma.Error401Unauthorized(err.Error())
	}

	if errors.Is(err, domain.ErrNotFound) {
		return huma.Error404NotFound("record not found")
	}

	var stErr *domain.StorageUnavailableError
	if errors.As(err, &stErr) {
		return huma.Error503ServiceUnavailable("storage unavailable, try again")
	}

	return huma.Error500InternalServerError("internal server error")
}
