package http

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/tourify/internal/adapter/csv"
	"github.com/neomorfeo/tourify/internal/derive"
	"github.com/neomorfeo/tourify/internal/domain"
)

// TransactionResponse is the API representation of a transaction.
type TransactionResponse struct {
	ID          string  `json:"id" doc:"Unique identifier"`
	Type        string  `json:"type" doc:"income or expense"`
	Category    string  `json:"category" doc:"Category for the type"`
	Description string  `json:"description" doc:"Free-form description"`
	Amount      float64 `json:"amount" doc:"Amount in CLP"`
	Date        string  `json:"date" doc:"Calendar date (YYYY-MM-DD)"`
	CreatedAt   string  `json:"createdAt" doc:"Creation timestamp (ISO 8601)"`
}

func toTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		Category:    t.Category,
		Description: t.Description,
		Amount:      t.Amount,
		Date:        t.Date.UTC().Format(domain.DateLayout),
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	resp := make([]TransactionResponse, len(ts))
	for i, t := range ts {
		resp[i] = toTransactionResponse(t)
	}
	return resp
}

// TransactionBody is the create and edit form of a transaction.
type TransactionBody struct {
	Type        string  `json:"type" enum:"income,expense" doc:"income or expense"`
	Category    string  `json:"category" minLength:"1" doc:"Category for the type"`
	Description string  `json:"description,omitempty" doc:"Free-form description"`
	Amount      float64 `json:"amount" minimum:"0" doc:"Amount in CLP"`
	Date        string  `json:"date" format:"date" doc:"Calendar date (YYYY-MM-DD)"`
}

func (b TransactionBody) draft() (domain.Transaction, error) {
	date, err := domain.ParseDate(b.Date)
	if err != nil {
		return domain.Transaction{}, &domain.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return domain.Transaction{
		Type:        domain.TransactionType(b.Type),
		Category:    b.Category,
		Description: b.Description,
		Amount:      b.Amount,
		Date:        date,
	}, nil
}

// TransactionFilter holds the raw list filters shared by listing and export.
type TransactionFilter struct {
	Type        string `query:"type" required:"false" doc:"income, expense or all"`
	Category    string `query:"category" required:"false" doc:"Filter by category"`
	Granularity string `query:"granularity" required:"false" doc:"monthly or annual"`
	Period      string `query:"period" required:"false" doc:"YYYY-MM for monthly, YYYY for annual"`
}

type ListTransactionsInput struct {
	TransactionFilter
}

type TransactionsOutput struct {
	Body []TransactionResponse
}

type CreateTransactionInput struct {
	Body TransactionBody
}

type UpdateTransactionInput struct {
	ID   string `path:"id" doc:"Transaction ID"`
	Body TransactionBody
}

type DeleteTransactionInput struct {
	ID string `path:"id" doc:"Transaction ID"`
}

// --- KPIs ---

type KPIsInput struct {
	Granularity string `query:"granularity" required:"false" default:"monthly" enum:"monthly,annual" doc:"Reporting period unit"`
}

type KPIsResponse struct {
	TotalIncome        float64 `json:"totalIncome" doc:"Income in the current period"`
	TotalExpenses      float64 `json:"totalExpenses" doc:"Expenses in the current period"`
	NetProfit          float64 `json:"netProfit" doc:"Income minus expenses"`
	Target             float64 `json:"target" doc:"Profit target for the period"`
	ProgressPercentage float64 `json:"progressPercentage" doc:"Net profit over target, capped at 100"`
}

type KPIsOutput struct {
	Body KPIsResponse
}

// --- Series ---

type SeriesInput struct {
	Year int `query:"year" required:"false" minimum:"0" doc:"Calendar year, current year when omitted"`
}

type MonthTotalsResponse struct {
	Month    int     `json:"month" doc:"Month number, 1 is January"`
	Income   float64 `json:"income" doc:"Income in the month"`
	Expenses float64 `json:"expenses" doc:"Expenses in the month"`
}

type SeriesOutput struct {
	Body []MonthTotalsResponse
}

// --- Export ---

type ExportInput struct {
	TransactionFilter
}

type ExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

func registerTransactions(api huma.API, svc Services) {
	filtered := func(ctx context.Context, f TransactionFilter) []domain.Transaction {
		crit := svc.Catalog.TransactionCriteria(f.Type, f.Category, f.Granularity, f.Period)
		return derive.Transactions(svc.Transactions.List(ctx), crit)
	}
	relist := func(ctx context.Context) *TransactionsOutput {
		return &TransactionsOutput{Body: toTransactionResponses(filtered(ctx, TransactionFilter{}))}
	}

	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        "/api/v1/transactions",
		Summary:     "List transactions",
		Tags:        []string{"Transactions"},
	}, func(ctx context.Context, input *ListTransactionsInput) (*TransactionsOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		return &TransactionsOutput{Body: toTransactionResponses(filtered(ctx, input.TransactionFilter))}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-transaction",
		Method:      http.MethodPost,
		Path:        "/api/v1/transactions",
		Summary:     "Record a transaction",
		Tags:        []string{"Transactions"},
	}, func(ctx context.Context, input *CreateTransactionInput) (*TransactionsOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		draft, err := input.Body.draft()
		if err == nil {
			draft, err = svc.Catalog.ValidateTransaction(draft)
		}
		if err != nil {
			return nil, toHumaError(err)
		}
		if err := svc.Transactions.Create(ctx, draft); err != nil {
			return nil, toHumaError(err)
		}
		return relist(ctx), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        "/api/v1/transactions/{id}",
		Summary:     "Edit a transaction",
		Tags:        []string{"Transactions"},
	}, func(ctx context.Context, input *UpdateTransactionInput) (*TransactionsOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		patch, err := input.Body.draft()
		if err == nil {
			patch, err = svc.Catalog.ValidateTransaction(patch)
		}
		if err != nil {
			return nil, toHumaError(err)
		}
		svc.Transactions.Update(ctx, input.ID, patch)
		return relist(ctx), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/api/v1/transactions/{id}",
		Summary:     "Delete a transaction",
		Tags:        []string{"Transactions"},
	}, func(ctx context.Context, input *DeleteTransactionInput) (*TransactionsOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		if err := svc.Transactions.Delete(ctx, input.ID); err != nil {
			return nil, toHumaError(err)
		}
		return relist(ctx), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "transaction-kpis",
		Method:      http.MethodGet,
		Path:        "/api/v1/transactions/kpis",
		Summary:     "Income, expenses and target progress for the current month or year",
		Tags:        []string{"Transactions"},
	}, func(ctx context.Context, input *KPIsInput) (*KPIsOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		k := derive.ComputeKPIs(svc.Transactions.List(ctx), domain.Granularity(input.Granularity), svc.Catalog.MonthlyTarget, svc.Now())
		return &KPIsOutput{Body: KPIsResponse{
			TotalIncome:        k.TotalIncome,
			TotalExpenses:      k.TotalExpenses,
			NetProfit:          k.NetProfit,
			Target:             k.Target,
			ProgressPercentage: k.ProgressPercentage,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "transaction-series",
		Method:      http.MethodGet,
		Path:        "/api/v1/transactions/series",
		Summary:     "Monthly income and expenses for a year",
		Tags:        []string{"Transactions"},
	}, func(ctx context.Context, input *SeriesInput) (*SeriesOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		year := input.Year
		if year == 0 {
			year = svc.Now().UTC().Year()
		}
		series := derive.MonthlySeries(svc.Transactions.List(ctx), year)
		resp := make([]MonthTotalsResponse, len(series))
		for i, m := range series {
			resp[i] = MonthTotalsResponse{Month: int(m.Month), Income: m.Income, Expenses: m.Expenses}
		}
		return &SeriesOutput{Body: resp}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "export-transactions",
		Method:      http.MethodGet,
		Path:        "/api/v1/transactions/export",
		Summary:     "Download the filtered transactions as CSV",
		Tags:        []string{"Transactions"},
	}, func(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
		if err := requireUser(ctx, svc); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := csv.Write(&buf, filtered(ctx, input.TransactionFilter)); err != nil {
			return nil, toHumaError(err)
		}
		return &ExportOutput{
			ContentType:        csv.ContentType,
			ContentDisposition: fmt.Sprintf("attachment; filename=%q", csv.Filename(svc.Now())),
			Body:               buf.Bytes(),
		}, nil
	})
}
