package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/tourify/internal/domain"
)

// TourResponse is the API representation of a virtual tour.
type TourResponse struct {
	ID    string `json:"id" doc:"Unique identifier"`
	URL   string `json:"url" doc:"Embeddable tour address"`
	Title string `json:"title" doc:"Tour title"`
	Label string `json:"label" doc:"Short label shown on cards"`
}

func toTourResponses(ts []domain.Tour) []TourResponse {
	resp := make([]TourResponse, len(ts))
	for i, t := range ts {
		resp[i] = TourResponse{ID: t.ID, URL: t.URL, Title: t.Title, Label: t.Label}
	}
	return resp
}

// TourBody is the create and edit form of a tour.
type TourBody struct {
	URL   string `json:"url" minLength:"1" doc:"Embeddable tour address"`
	Title string `json:"title" minLength:"1" maxLength:"255" doc:"Tour title"`
	Label string `json:"label" minLength:"1" maxLength:"100" doc:"Short label shown on cards"`
}

func (b TourBody) draft() domain.Tour {
	return domain.Tour{URL: b.URL, Title: b.Title, Label: b.Label}
}

type ToursOutput struct {
	Body []TourResponse
}

type CreateTourInput struct {
	Body TourBody
}

type UpdateTourInput struct {
	ID   string `path:"id" doc:"Tour ID"`
	Body TourBody
}

type DeleteTourInput struct {
	ID string `path:"id" doc:"Tour ID"`
}

func registerTours(api huma.API, svc Services) {
	relist := func(ctx context.Context) *ToursOutput {
		return &ToursOutput{Body: toTourResponses(svc.Tours.List(ctx))}
	}

	huma.Register(api, huma.Operation{
		OperationID: "list-tours",
		Method:      http.MethodGet,
		Path:        "/api/v1/tours",
		Summary:     "List virtual tours",
		Tags:        []string{"Tours"},
	}, func(ctx context.Context, _ *struct{}) (*ToursOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		return relist(ctx), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-public-tours",
		Method:      http.MethodGet,
		Path:        "/api/v1/public/tours",
		Summary:     "List virtual tours for the public page",
		Tags:        []string{"Tours"},
	}, func(ctx context.Context, _ *struct{}) (*ToursOutput, error) {
		return relist(ctx), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-tour",
		Method:      http.MethodPost,
		Path:        "/api/v1/tours",
		Summary:     "Add a virtual tour",
		Tags:        []string{"Tours"},
	}, func(ctx context.Context, input *CreateTourInput) (*ToursOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		draft, err := svc.Catalog.ValidateTour(input.Body.draft())
		if err != nil {
			return nil, toHumaError(err)
		}
		if err := svc.Tours.Create(ctx, draft); err != nil {
			return nil, toHumaError(err)
		}
		return relist(ctx), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-tour",
		Method:      http.MethodPut,
		Path:        "/api/v1/tours/{id}",
		Summary:     "Edit a virtual tour",
		Tags:        []string{"Tours"},
	}, func(ctx context.Context, input *UpdateTourInput) (*ToursOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		patch, err := svc.Catalog.ValidateTour(input.Body.draft())
		if err != nil {
			return nil, toHumaError(err)
		}
		svc.Tours.Update(ctx, input.ID, patch)
		return relist(ctx), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-tour",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tours/{id}",
		Summary:     "Remove a virtual tour",
		Tags:        []string{"Tours"},
	}, func(ctx context.Context, input *DeleteTourInput) (*ToursOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		if err := svc.Tours.Delete(ctx, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return relist(ctx), nil
	})
}
