package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/pagination"
	"github.com/mrlokans/bookshelf/internal/settingsstore"
)

// maxPaginateBody caps the text accepted by the paginate endpoint.
const maxPaginateBody = 8 << 20

// BudgetsOverride changes some budget fields. Absent fields keep their value.
type BudgetsOverride struct {
	WordsPerPage    *int    `json:"words_per_page"`
	MinLinesPerPage *int    `json:"min_lines_per_page"`
	MaxLinesPerPage *int    `json:"max_lines_per_page"`
	CharsPerLine    *int    `json:"chars_per_line"`
	Measure         *string `json:"measure"`
	RebalancePasses *int    `json:"rebalance_passes"`
}

func (o *BudgetsOverride) apply(b pagination.Budgets) pagination.Budgets {
	if o == nil {
		return b
	}
	if o.WordsPerPage != nil {
		b.WordsPerPage = *o.WordsPerPage
	}
	if o.MinLinesPerPage != nil {
		b.MinLinesPerPage = *o.MinLinesPerPage
	}
	if o.MaxLinesPerPage != nil {
		b.MaxLinesPerPage = *o.MaxLinesPerPage
	}
	if o.CharsPerLine != nil {
		b.CharsPerLine = *o.CharsPerLine
	}
	if o.Measure != nil {
		b.Measure = pagination.Measure(*o.Measure)
	}
	if o.RebalancePasses != nil {
		b.RebalancePasses = *o.RebalancePasses
	}
	return b
}

// PaginateController paginates ad-hoc text, e.g. to preview budgets.
type PaginateController struct {
	reader   Reader
	settings PaginationSettingsStore
}

func NewPaginateController(reader Reader, settings PaginationSettingsStore) *PaginateController {
	return &PaginateController{reader: reader, settings: settings}
}

// PaginateRequest is the body of POST /api/paginate.
type PaginateRequest struct {
	Text    string           `json:"text"`
	Budgets *BudgetsOverride `json:"budgets"`
}

// PaginateResponse lists the pages of the submitted text.
type PaginateResponse struct {
	Pages      []string           `json:"pages"`
	TotalPages int                `json:"total_pages"`
	Budgets    pagination.Budgets `json:"budgets"`
	BudgetsKey string             `json:"budgets_key"`
}

// Paginate handles POST /api/paginate
// Budgets in the request override the effective ones field by field.
func (pc *PaginateController) Paginate(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPaginateBody)

	var req PaginateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	budgets := req.Budgets.apply(pc.settings.GetPaginationBudgets())
	if err := settingsstore.ValidatePaginationBudgets(budgets); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, used := pc.reader.PaginateText(req.Text, &budgets)
	pages := result.Pages
	if pages == nil {
		pages = []string{}
	}

	c.JSON(http.StatusOK, PaginateResponse{
		Pages:      pages,
		TotalPages: result.TotalPages,
		Budgets:    used,
		BudgetsKey: used.Key(),
	})
}
