package timelog

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/rest"
)

type EntryDTO struct {
	Id        string `json:"id,omitempty"`
	Date      string `json:"date"`
	TaskType  string `json:"taskType"`
	Minutes   int    `json:"minutes"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type DailySummaryDTO struct {
	Date    string         `json:"date"`
	Minutes map[string]int `json:"minutes"`
	Total   int            `json:"total"`
}

type WeeklySummaryDTO struct {
	StartDate string            `json:"startDate"`
	EndDate   string            `json:"endDate"`
	Days      []DailySummaryDTO `json:"days"`
	TaskTypes []string          `json:"taskTypes"`
	Totals    map[string]int    `json:"totals"`
	Total     int               `json:"total"`
}

type CsvRenderer interface {
	Render(headers []string, rows [][]string) (string, error)
}

type SummaryRenderer interface {
	RenderSummary(summary WeeklySummary) (string, error)
}

type Handler struct {
	service         Service
	csvRenderer     CsvRenderer
	summaryRenderer SummaryRenderer
}

func NewHandler(service Service, csvRenderer CsvRenderer, summaryRenderer SummaryRenderer) *Handler {
	return &Handler{service, csvRenderer, summaryRenderer}
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Creating time entry")

	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		badRequest(w, "Invalid request body format", "")
		return
	}
	entry, err := dtoToEntry(dto)
	if err != nil {
		badRequest(w, "Invalid time entry", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), entry)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			badRequest(w, "Invalid time entry", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(entryToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetEntries(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter, err := filterFromQuery(r)
	if err != nil {
		badRequest(w, "Invalid filter", err.Error())
		return
	}

	entries, err := h.service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		response = append(response, entryToDTO(e))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	entryId := mux.Vars(r)["entryId"]

	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		badRequest(w, "Invalid request body format", "")
		return
	}
	if dto.Id == "" {
		dto.Id = entryId
	}
	if dto.Id != entryId {
		badRequest(w, "Invalid entry id in request body", "")
		return
	}

	entry, err := dtoToEntry(dto)
	if err != nil {
		badRequest(w, "Invalid time entry", err.Error())
		return
	}

	ok, err := h.service.Update(r.Context(), entry)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			badRequest(w, "Invalid time entry", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Time entry not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(entryToDTO(entry)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	entryId := mux.Vars(r)["entryId"]

	ok, err := h.service.Delete(r.Context(), entryId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSummary renders the weekly summary. Defaults to the week containing
// today when no date is given; Accept: text/csv switches to the tabular
// rendering.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if dateString := r.URL.Query().Get("date"); dateString != "" {
		parsed, err := time.Parse(DateLayout, dateString)
		if err != nil {
			badRequest(w, "Invalid date format", "date must be in YYYY-MM-DD format")
			return
		}
		date = parsed
	}

	summary, err := h.service.Summary(r.Context(), date)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csv, err := h.summaryRenderer.RenderSummary(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(summaryToDTO(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ExportCsv(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		badRequest(w, "Invalid filter", err.Error())
		return
	}

	entries, err := h.service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	schema := Schema()
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, schema.Encode(e))
	}
	csv, err := h.csvRenderer.Render(schema.Columns, rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="timelog_export.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write csv response: %v", err)
	}
}

func filterFromQuery(r *http.Request) (Filter, error) {
	query := r.URL.Query()
	filter := Filter{
		TaskType: query.Get("taskType"),
	}
	if month := query.Get("month"); month != "" {
		m, err := time.Parse("2006-01", month)
		if err != nil {
			return Filter{}, errors.New("month must be in YYYY-MM format")
		}
		filter.Month = &m
	}
	return filter, nil
}

func badRequest(w http.ResponseWriter, message, details string) {
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func summaryToDTO(summary WeeklySummary) WeeklySummaryDTO {
	days := make([]DailySummaryDTO, 0, len(summary.Days))
	for _, day := range summary.Days {
		days = append(days, DailySummaryDTO{
			Date:    day.Date.Format(DateLayout),
			Minutes: day.Minutes,
			Total:   day.Total,
		})
	}
	return WeeklySummaryDTO{
		StartDate: summary.StartDate.Format(DateLayout),
		EndDate:   summary.EndDate.Format(DateLayout),
		Days:      days,
		TaskTypes: summary.TaskTypes,
		Totals:    summary.Totals,
		Total:     summary.Total,
	}
}

func entryToDTO(e Entry) EntryDTO {
	dto := EntryDTO{
		Id:       e.Id,
		Date:     e.Date.Format(DateLayout),
		TaskType: e.TaskType,
		Minutes:  e.Minutes,
		Notes:    e.Notes,
	}
	if !e.CreatedAt.IsZero() {
		dto.CreatedAt = e.CreatedAt.Format(TimestampLayout)
	}
	if !e.UpdatedAt.IsZero() {
		dto.UpdatedAt = e.UpdatedAt.Format(TimestampLayout)
	}
	return dto
}

func dtoToEntry(dto EntryDTO) (Entry, error) {
	var date time.Time
	if dto.Date != "" {
		parsed, err := time.Parse(DateLayout, dto.Date)
		if err != nil {
			return Entry{}, errors.New("date must be in YYYY-MM-DD format")
		}
		date = parsed
	}
	return Entry{
		Id:       dto.Id,
		Date:     date,
		TaskType: dto.TaskType,
		Minutes:  dto.Minutes,
		Notes:    dto.Notes,
	}, nil
}
