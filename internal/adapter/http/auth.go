package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/tourify/internal/domain"
)

// UserResponse is the API representation of an operator.
type UserResponse struct {
	ID    string `json:"id" doc:"Operator identifier"`
	Name  string `json:"name" doc:"Display name"`
	Email string `json:"email" doc:"Sign-in email"`
	Role  string `json:"role" doc:"Job title"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// CatalogResponse lists the values accepted by forms and filters.
type CatalogResponse struct {
	Statuses      []string            `json:"statuses" doc:"Pipeline statuses in board order"`
	Services      []string            `json:"services" doc:"Offered services"`
	Tags          []string            `json:"tags" doc:"Prospect tags"`
	Categories    map[string][]string `json:"categories" doc:"Transaction categories by type"`
	MonthlyTarget float64             `json:"monthlyTarget" doc:"Monthly net profit target (CLP)"`
}

type LoginInput struct {
	Body struct {
		Email    string `json:"email" minLength:"1" doc:"Sign-in email"`
		Password string `json:"password" minLength:"1" doc:"Password"`
	}
}

type UserOutput struct {
	Body UserResponse
}

type UsersOutput struct {
	Body []UserResponse
}

type CatalogOutput struct {
	Body CatalogResponse
}

func registerAuth(api huma.API, svc Services) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Sign in with email and password",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*UserOutput, error) {
		u, err := svc.Auth.Login(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &UserOutput{Body: toUserResponse(u)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "logout",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/logout",
		Summary:       "Sign out",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		if err := svc.Auth.Logout(ctx); err != nil {
			return nil, toHumaError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "current-user",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Get the signed-in operator",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, _ *struct{}) (*UserOutput, error) {
		u, ok := svc.Auth.CurrentUser(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("not signed in")
		}
		return &UserOutput{Body: toUserResponse(u)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List operators available for assignment",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, _ *struct{}) (*UsersOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		users := svc.Auth.Users()
		resp := make([]UserResponse, len(users))
		for i, u := range users {
			resp[i] = toUserResponse(u)
		}
		return &UsersOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-catalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog",
		Summary:     "Get form and filter options",
		Tags:        []string{"Catalog"},
	}, func(_ context.Context, _ *struct{}) (*CatalogOutput, error) {
		c := svc.Catalog
		statuses := make([]string, len(c.Statuses))
		for i, s := range c.Statuses {
			statuses[i] = string(s)
		}
		categories := make(map[string][]string, len(c.Categories))
		for t, list := range c.Categories {
			categories[string(t)] = list
		}
		return &CatalogOutput{Body: CatalogResponse{
			Statuses:      statuses,
			Services:      c.Services,
			Tags:          c.Tags,
			Categories:    categories,
			MonthlyTarget: c.MonthlyTarget,
		}}, nil
	})
}
