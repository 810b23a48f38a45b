package journal

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
	Id        string   `json:"id,omitempty"`
	Date      string   `json:"date"`
	Title     string   `json:"title,omitempty"`
	Body      string   `json:"body"`
	Mood      string   `json:"mood,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

type CsvRenderer interface {
	Render(headers []string, rows [][]string) (string, error)
}

type Handler struct {
	service     Service
	csvRenderer CsvRenderer
}

func NewHandler(service Service, csvRenderer CsvRenderer) *Handler {
	return &Handler{service, csvRenderer}
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Creating journal entry")

	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		badRequest(w, "Invalid request body format", "")
		return
	}
	entry, err := dtoToEntry(dto)
	if err != nil {
		badRequest(w, "Invalid journal entry", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), entry)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			badRequest(w, "Invalid journal entry", err.Error())
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
		badRequest(w, "Invalid journal entry", err.Error())
		return
	}

	ok, err := h.service.Update(r.Context(), entry)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			badRequest(w, "Invalid journal entry", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Journal entry not found", http.StatusNotFound)
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
	w.Header().Set("Content-Disposition", `attachment; filename="journal_export.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write csv response: %v", err)
	}
}

func filterFromQuery(r *http.Request) (Filter, error) {
	query := r.URL.Query()
	filter := Filter{
		Mood:   query.Get("mood"),
		Search: query.Get("search"),
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

func entryToDTO(e Entry) EntryDTO {
	dto := EntryDTO{
		Id:    e.Id,
		Date:  e.Date.Format(DateLayout),
		Title: e.Title,
		Body:  e.Body,
		Mood:  e.Mood,
		Tags:  e.Tags,
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
		Id:    dto.Id,
		Date:  date,
		Title: dto.Title,
		Body:  dto.Body,
		Mood:  dto.Mood,
		Tags:  dto.Tags,
	}, nil
}
