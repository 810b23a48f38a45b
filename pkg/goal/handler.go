package goal

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/rest"
)

type GoalDTO struct {
	Id          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	TargetDate  string `json:"targetDate,omitempty"`
	Progress    int    `json:"progress"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
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

func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Creating goal")

	var dto GoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		badRequest(w, "Invalid request body format", "")
		return
	}
	goal, err := dtoToGoal(dto)
	if err != nil {
		badRequest(w, "Invalid goal", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), goal)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			badRequest(w, "Invalid goal", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(goalToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetGoals(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter, err := filterFromQuery(r)
	if err != nil {
		badRequest(w, "Invalid filter", err.Error())
		return
	}

	goals, err := h.service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make([]GoalDTO, 0, len(goals))
	for _, g := range goals {
		response = append(response, goalToDTO(g))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	goalId := mux.Vars(r)["goalId"]

	var dto GoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		badRequest(w, "Invalid request body format", "")
		return
	}
	if dto.Id == "" {
		dto.Id = goalId
	}
	if dto.Id != goalId {
		badRequest(w, "Invalid goal id in request body", "")
		return
	}

	goal, err := dtoToGoal(dto)
	if err != nil {
		badRequest(w, "Invalid goal", err.Error())
		return
	}

	ok, err := h.service.Update(r.Context(), goal)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			badRequest(w, "Invalid goal", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Goal not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(goalToDTO(goal)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	goalId := mux.Vars(r)["goalId"]

	ok, err := h.service.Delete(r.Context(), goalId)
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

	goals, err := h.service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	schema := Schema()
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, schema.Encode(g))
	}
	csv, err := h.csvRenderer.Render(schema.Columns, rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="goals_export.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write csv response: %v", err)
	}
}

func filterFromQuery(r *http.Request) (Filter, error) {
	query := r.URL.Query()
	filter := Filter{
		Search: query.Get("search"),
	}
	if completed := query.Get("completed"); completed != "" {
		parsed, err := strconv.ParseBool(completed)
		if err != nil {
			return Filter{}, errors.New("completed must be true or false")
		}
		filter.Completed = &parsed
	}
	return filter, nil
}

func badRequest(w http.ResponseWriter, message, details string) {
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func goalToDTO(g Goal) GoalDTO {
	dto := GoalDTO{
		Id:          g.Id,
		Title:       g.Title,
		Description: g.Description,
		Progress:    g.Progress,
		Completed:   g.Completed,
	}
	if !g.TargetDate.IsZero() {
		dto.TargetDate = g.TargetDate.Format(DateLayout)
	}
	if !g.CreatedAt.IsZero() {
		dto.CreatedAt = g.CreatedAt.Format(TimestampLayout)
	}
	if !g.UpdatedAt.IsZero() {
		dto.UpdatedAt = g.UpdatedAt.Format(TimestampLayout)
	}
	return dto
}

func dtoToGoal(dto GoalDTO) (Goal, error) {
	var targetDate time.Time
	if dto.TargetDate != "" {
		parsed, err := time.Parse(DateLayout, dto.TargetDate)
		if err != nil {
			return Goal{}, errors.New("targetDate must be in YYYY-MM-DD format")
		}
		targetDate = parsed
	}
	return Goal{
		Id:          dto.Id,
		Title:       dto.Title,
		Description: dto.Description,
		TargetDate:  targetDate,
		Progress:    dto.Progress,
		Completed:   dto.Completed,
	}, nil
}
