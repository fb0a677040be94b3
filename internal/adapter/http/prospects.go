package http

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/tourify/internal/derive"
	"github.com/neomorfeo/tourify/internal/domain"
)

// ProspectResponse is the API representation of a prospect.
type ProspectResponse struct {
	ID          string   `json:"id" doc:"Unique identifier"`
	ContactName string   `json:"contactName" doc:"Contact person"`
	Company     string   `json:"company" doc:"Company name"`
	Email       string   `json:"email" doc:"Contact email"`
	Phone       string   `json:"phone" doc:"Contact phone"`
	Service     string   `json:"service" doc:"Service of interest"`
	Status      string   `json:"status" doc:"Pipeline status"`
	AssignedTo  string   `json:"assignedTo" doc:"Operator id in charge"`
	Tags        []string `json:"tags" doc:"Tags"`
	Notes       string   `json:"notes" doc:"Free-form notes"`
	CreatedAt   string   `json:"createdAt" doc:"Creation timestamp (ISO 8601)"`
}

func toProspectResponse(p domain.Prospect) ProspectResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProspectResponse{
		ID:          p.ID,
		ContactName: p.ContactName,
		Company:     p.Company,
		Email:       p.Email,
		Phone:       p.Phone,
		Service:     p.Service,
		Status:      string(p.Status),
		AssignedTo:  p.AssignedTo,
		Tags:        tags,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toProspectResponses(ps []domain.Prospect) []ProspectResponse {
	resp := make([]ProspectResponse, len(ps))
	for i, p := range ps {
		resp[i] = toProspectResponse(p)
	}
	return resp
}

// ProspectBody is the create and edit form of a prospect.
type ProspectBody struct {
	ContactName string   `json:"contactName" minLength:"1" maxLength:"255" doc:"Contact person"`
	Company     string   `json:"company,omitempty" maxLength:"255" doc:"Company name"`
	Email       string   `json:"email" minLength:"1" doc:"Contact email"`
	Phone       string   `json:"phone,omitempty" doc:"Contact phone"`
	Service     string   `json:"service" doc:"Service of interest"`
	Status      string   `json:"status,omitempty" doc:"Pipeline status, Nuevo when empty"`
	AssignedTo  string   `json:"assignedTo,omitempty" doc:"Operator id in charge"`
	Tags        []string `json:"tags,omitempty" doc:"Tags"`
	Notes       string   `json:"notes,omitempty" doc:"Free-form notes"`
}

func (b ProspectBody) draft() domain.Prospect {
	return domain.Prospect{
		ContactName: b.ContactName,
		Company:     b.Company,
		Email:       b.Email,
		Phone:       b.Phone,
		Service:     b.Service,
		Status:      domain.Status(b.Status),
		AssignedTo:  b.AssignedTo,
		Tags:        b.Tags,
		Notes:       b.Notes,
	}
}

// --- List Prospects ---

type ListProspectsInput struct {
	Search     string `query:"search" required:"false" doc:"Case-insensitive match on name, company or email"`
	Status     string `query:"status" required:"false" doc:"Filter by pipeline status"`
	Service    string `query:"service" required:"false" doc:"Filter by service"`
	AssignedTo string `query:"assignedTo" required:"false" doc:"Filter by operator id"`
	Tag        string `query:"tag" required:"false" doc:"Filter by tag"`
}

type ProspectsOutput struct {
	Body []ProspectResponse
}

// --- Create / Update / Delete ---

type CreateProspectInput struct {
	Body ProspectBody
}

type UpdateProspectInput struct {
	ID   string `path:"id" doc:"Prospect ID"`
	Body ProspectBody
}

type DeleteProspectInput struct {
	ID string `path:"id" doc:"Prospect ID"`
}

// --- Move ---

type MoveProspectInput struct {
	ID   string `path:"id" doc:"Prospect ID"`
	Body struct {
		Status string `json:"status" doc:"Target pipeline status"`
	}
}

// --- Board ---

type ColumnResponse struct {
	Status    string             `json:"status" doc:"Pipeline status"`
	Prospects []ProspectResponse `json:"prospects" doc:"Prospects in this status, newest first"`
}

type BoardOutput struct {
	Body []ColumnResponse
}

func registerProspects(api huma.API, svc Services) {
	// relist answers a write with the fresh, unfiltered collection.
	relist := func(ctx context.Context) *ProspectsOutput {
		all := derive.Prospects(svc.Prospects.List(ctx), domain.ProspectCriteria{})
		return &ProspectsOutput{Body: toProspectResponses(all)}
	}

	huma.Register(api, huma.Operation{
		OperationID: "list-prospects",
		Method:      http.MethodGet,
		Path:        "/api/v1/prospects",
		Summary:     "List prospects",
		Tags:        []string{"Prospects"},
	}, func(ctx context.Context, input *ListProspectsInput) (*ProspectsOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		crit := svc.Catalog.ProspectCriteria(input.Search, input.Status, input.Service, input.AssignedTo, input.Tag)
		filtered := derive.Prospects(svc.Prospects.List(ctx), crit)
		return &ProspectsOutput{Body: toProspectResponses(filtered)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-prospect",
		Method:      http.MethodPost,
		Path:        "/api/v1/prospects",
		Summary:     "Create a prospect",
		Tags:        []string{"Prospects"},
	}, func(ctx context.Context, input *CreateProspectInput) (*ProspectsOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		draft, err := svc.Catalog.ValidateProspect(input.Body.draft())
		if err != nil {
			return nil, toHumaError(err)
		}
		if err := svc.Prospects.Create(ctx, draft); err != nil {
			return nil, toHumaError(err)
		}
		return relist(ctx), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-prospect",
		Method:      http.MethodPut,
		Path:        "/api/v1/prospects/{id}",
		Summary:     "Edit a prospect",
		Tags:        []string{"Prospects"},
	}, func(ctx context.Context, input *UpdateProspectInput) (*ProspectsOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		patch, err := svc.Catalog.ValidateProspect(input.Body.draft())
		if err != nil {
			return nil, toHumaError(err)
		}
		svc.Prospects.Update(ctx, input.ID, patch)
		return relist(ctx), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-prospect",
		Method:      http.MethodDelete,
		Path:        "/api/v1/prospects/{id}",
		Summary:     "Delete a prospect",
		Tags:        []string{"Prospects"},
	}, func(ctx context.Context, input *DeleteProspectInput) (*ProspectsOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		if err := svc.Prospects.Delete(ctx, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return relist(ctx), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "move-prospect",
		Method:      http.MethodPost,
		Path:        "/api/v1/prospects/{id}/status",
		Summary:     "Move a prospect to another pipeline status",
		Tags:        []string{"Prospects"},
	}, func(ctx context.Context, input *MoveProspectInput) (*ProspectsOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		if err := svc.Pipeline.Move(ctx, input.ID, domain.Status(input.Body.Status)); err != nil {
			return nil, toHumaError(err)
		}
		return relist(ctx), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "prospect-board",
		Method:      http.MethodGet,
		Path:        "/api/v1/prospects/board",
		Summary:     "Prospects grouped by pipeline status",
		Tags:        []string{"Prospects"},
	}, func(ctx context.Context, _ *struct{}) (*BoardOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		cols := derive.GroupByStatus(svc.Prospects.List(ctx), svc.Catalog.Statuses)
		resp := make([]ColumnResponse, len(cols))
		for i, c := range cols {
			resp[i] = ColumnResponse{Status: string(c.Status), Prospects: toProspectResponses(c.Prospects)}
		}
		return &BoardOutput{Body: resp}, nil
	})
}
