package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"keyword-campaigns/internal/core/domain"
	"keyword-campaigns/internal/table"
)

type columnPayload struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Type     string   `json:"type"`
	Editable bool     `json:"editable"`
	Computed bool     `json:"computed"`
	Filter   string   `json:"filter"`
	Sortable bool     `json:"sortable"`
	Options  []string `json:"options,omitempty"`
}

type rowPayload struct {
	ID    string         `json:"id"`
	Cells map[string]any `json:"cells"`
}

type filterPayload struct {
	Column string `json:"column"`
	Kind   string `json:"kind"`
	Value  any    `json:"value"`
}

type sortPayload struct {
	Column    string `json:"column"`
	Direction string `json:"direction"`
}

type tableResponse struct {
	Columns []columnPayload `json:"columns"`
	Rows    []rowPayload    `json:"rows"`
	Filters []filterPayload `json:"filters"`
	Sort    *sortPayload    `json:"sort"`
}

// handleTableRows refetches the collection and renders it through the
// session's filters and sort.
func (h *Handler) handleTableRows(w http.ResponseWriter, r *http.Request) {
	ctrl := h.tableFor(r)
	campaigns, err := h.svc.Refresh(r.Context(), sessionIdentity(r.Context()))
	if err != nil {
		h.logger.Error("table rows error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	ctrl.SetCampaigns(campaigns)

	resp := tableResponse{Filters: []filterPayload{}}
	for _, c := range ctrl.Columns() {
		resp.Columns = append(resp.Columns, columnPayload{
			ID:       c.ID,
			Title:    c.Title,
			Type:     cellTypeName(c.Type),
			Editable: c.Editable,
			Computed: c.Computed,
			Filter:   filterKindName(c.Filter),
			Sortable: c.Sortable,
			Options:  c.Options,
		})
	}
	for _, row := range ctrl.Rows() {
		cells := make(map[string]any, len(row.Cells))
		for id, v := range row.Cells {
			if t, ok := v.(time.Time); ok {
				v = t.Format(domain.DateLayout)
			}
			cells[id] = v
		}
		resp.Rows = append(resp.Rows, rowPayload{ID: row.ID, Cells: cells})
	}
	for _, f := range ctrl.Filters() {
		resp.Filters = append(resp.Filters, filterPayload{
			Column: f.Column,
			Kind:   filterKindName(f.Kind),
			Value:  f.Value,
		})
	}
	if s := ctrl.SortSpec(); s != nil {
		resp.Sort = &sortPayload{Column: s.Column, Direction: sortDirectionName(s.Direction)}
	}
	writeJSON(w, h.logger, resp)
}

type cellRequest struct {
	RecordID string `json:"recordId"`
	ColumnID string `json:"columnId"`
	Value    any    `json:"value"`
	Draft    string `json:"draft"`
}

func decodeCellRequest(w http.ResponseWriter, r *http.Request) (cellRequest, bool) {
	var req cellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return req, false
	}
	if req.RecordID == "" || req.ColumnID == "" {
		http.Error(w, "recordId and columnId are required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

// handleTableClick feeds one pointer click into the session's click
// arbiter. The resulting action (filter toggle or edit start) resolves
// asynchronously once the disambiguation window has passed, so the
// response is 202.
func (h *Handler) handleTableClick(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCellRequest(w, r)
	if !ok {
		return
	}
	ctrl := h.tableFor(r)
	ctrl.SetCampaigns(h.svc.Campaigns())
	ctrl.Click(req.RecordID, req.ColumnID, req.Value)
	w.WriteHeader(http.StatusAccepted)
}

// handleTableSort advances the sort cycle for a header click.
func (h *Handler) handleTableSort(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ColumnID string `json:"columnId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	h.tableFor(r).ToggleSort(req.ColumnID)
	w.WriteHeader(http.StatusNoContent)
}

// handleCellEdit starts editing a cell, the explicit double-click path for
// editable columns that never arm the click timer.
func (h *Handler) handleCellEdit(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCellRequest(w, r)
	if !ok {
		return
	}
	ctrl := h.tableFor(r)
	ctrl.SetCampaigns(h.svc.Campaigns())
	ctrl.BeginEdit(req.RecordID, req.ColumnID)
	w.WriteHeader(http.StatusNoContent)
}

// handleCellDraft replaces the in-progress draft of a cell.
func (h *Handler) handleCellDraft(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCellRequest(w, r)
	if !ok {
		return
	}
	h.tableFor(r).SetDraft(req.RecordID, req.ColumnID, req.Draft)
	w.WriteHeader(http.StatusNoContent)
}

// handleCellCommit finishes an edit. An unchanged value commits nothing; a
// changed one runs the optimistic update protocol, and a store failure
// comes back field-scoped after the rollback.
func (h *Handler) handleCellCommit(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCellRequest(w, r)
	if !ok {
		return
	}
	ctrl := h.tableFor(r)
	err := ctrl.CommitCell(r.Context(), req.RecordID, req.ColumnID)
	// Re-sync the cells with the collection, which now holds either the
	// confirmed value or the rolled-back snapshot.
	ctrl.SetCampaigns(h.svc.Campaigns())
	if err != nil {
		h.writeCommitError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCellCancel aborts an edit without committing.
func (h *Handler) handleCellCancel(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCellRequest(w, r)
	if !ok {
		return
	}
	h.tableFor(r).CancelEdit(req.RecordID, req.ColumnID)
	w.WriteHeader(http.StatusNoContent)
}

func cellTypeName(t table.CellType) string {
	switch t {
	case table.Number:
		return "number"
	case table.Date:
		return "date"
	case table.Select:
		return "select"
	default:
		return "text"
	}
}

func filterKindName(k table.FilterKind) string {
	switch k {
	case table.ExactFilter:
		return "exact"
	case table.RangeFilter:
		return "range"
	default:
		return "none"
	}
}

func sortDirectionName(d table.SortDirection) string {
	switch d {
	case table.SortAsc:
		return "asc"
	case table.SortDesc:
		return "desc"
	default:
		return "none"
	}
}
