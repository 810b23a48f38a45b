package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/rest"
)

type EventDTO struct {
	Id        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	TaskType  string `json:"taskType"`
	Start     string `json:"start"`
	End       string `json:"end"`
	AllDay    bool   `json:"allDay,omitempty"`
	Location  string `json:"location,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

type RecurrenceDTO struct {
	Frequency string `json:"frequency"`
	Count     int    `json:"count,omitempty"`
	Until     string `json:"until,omitempty"`
}

type CreateEventRequest struct {
	EventDTO
	Recurrence *RecurrenceDTO `json:"recurrence,omitempty"`
}

type AgendaDayDTO struct {
	Date   string     `json:"date"`
	Events []EventDTO `json:"events"`
}

type EventHandler struct {
	eventService EventService
	csvRenderer  CsvRenderer
	icsRenderer  IcsRenderer
	pdfRenderer  PdfRenderer
}

// CsvRenderer renders the persisted tabular shape of the filtered events.
type CsvRenderer interface {
	Render(headers []string, rows [][]string) (string, error)
}

type IcsRenderer interface {
	Render(events []Event) string
}

type PdfRenderer interface {
	RenderAgenda(title string, days []AgendaDay) ([]byte, error)
}

func NewEventHandler(eventService EventService, csvRenderer CsvRenderer, icsRenderer IcsRenderer, pdfRenderer PdfRenderer) *EventHandler {
	return &EventHandler{eventService, csvRenderer, icsRenderer, pdfRenderer}
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Creating new event")

	var request CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		badRequest(w, "Invalid request body format", "")
		return
	}

	prototype, err := dtoToEvent(request.EventDTO)
	if err != nil {
		badRequest(w, "Invalid event", err.Error())
		return
	}

	rec := Recurrence{Frequency: FrequencyNone}
	if request.Recurrence != nil {
		rec.Frequency = request.Recurrence.Frequency
		rec.Count = request.Recurrence.Count
		if request.Recurrence.Until != "" {
			until, err := time.Parse(DateLayout, request.Recurrence.Until)
			if err != nil {
				badRequest(w, "Invalid until date", "Until must be in YYYY-MM-DD format")
				return
			}
			rec.Until = &until
		}
	}

	occurrences, err := h.eventService.Create(r.Context(), prototype, rec)
	if err != nil {
		if errors.Is(err, ErrInvalidRecurrence) || errors.Is(err, ErrInvalidBound) || errors.Is(err, ErrValidation) {
			badRequest(w, "Invalid event", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make([]EventDTO, 0, len(occurrences))
	for _, occurrence := range occurrences {
		response = append(response, eventToDTO(occurrence))
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *EventHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter, err := filterFromQuery(r)
	if err != nil {
		badRequest(w, "Invalid filter", err.Error())
		return
	}

	events, err := h.eventService.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make([]EventDTO, 0, len(events))
	for _, e := range events {
		response = append(response, eventToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *EventHandler) GetAgenda(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter, err := filterFromQuery(r)
	if err != nil {
		badRequest(w, "Invalid filter", err.Error())
		return
	}

	days, err := h.eventService.Agenda(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make([]AgendaDayDTO, 0, len(days))
	for _, day := range days {
		dayDTO := AgendaDayDTO{Date: day.Date.Format(DateLayout), Events: make([]EventDTO, 0, len(day.Events))}
		for _, e := range day.Events {
			dayDTO.Events = append(dayDTO.Events, eventToDTO(e))
		}
		response = append(response, dayDTO)
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	eventId := mux.Vars(r)["eventId"]

	var dto EventDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		badRequest(w, "Invalid request body format", "")
		return
	}
	if dto.Id == "" {
		dto.Id = eventId
	}
	if dto.Id != eventId {
		badRequest(w, "Invalid event id in request body", "")
		return
	}

	event, err := dtoToEvent(dto)
	if err != nil {
		badRequest(w, "Invalid event", err.Error())
		return
	}

	ok, err := h.eventService.Update(r.Context(), event)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			badRequest(w, "Invalid event", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Event not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(eventToDTO(event)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	eventId := mux.Vars(r)["eventId"]
	log.Tracef("Deleting event %s", eventId)

	ok, err := h.eventService.Delete(r.Context(), eventId)
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

func (h *EventHandler) ExportCsv(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		badRequest(w, "Invalid filter", err.Error())
		return
	}

	events, err := h.eventService.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	schema := Schema()
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, schema.Encode(e))
	}
	csv, err := h.csvRenderer.Render(schema.Columns, rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar_export.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write csv response: %v", err)
	}
}

func (h *EventHandler) ExportIcs(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		badRequest(w, "Invalid filter", err.Error())
		return
	}

	events, err := h.eventService.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(h.icsRenderer.Render(events))); err != nil {
		log.Errorf("failed to write ics response: %v", err)
	}
}

func (h *EventHandler) ExportPdf(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		badRequest(w, "Invalid filter", err.Error())
		return
	}

	days, err := h.eventService.Agenda(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pdf, err := h.pdfRenderer.RenderAgenda("Studio Agenda", days)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="agenda.pdf"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Errorf("failed to write pdf response: %v", err)
	}
}

func filterFromQuery(r *http.Request) (Filter, error) {
	query := r.URL.Query()
	filter := Filter{
		Categories: query["category"],
		TaskTypes:  query["taskType"],
		ShowPast:   true,
		Search:     query.Get("search"),
	}
	if month := query.Get("month"); month != "" {
		m, err := time.Parse("2006-01", month)
		if err != nil {
			return Filter{}, errors.New("month must be in YYYY-MM format")
		}
		filter.Month = &m
	}
	if query.Get("showPast") == "false" {
		filter.ShowPast = false
	}
	return filter, nil
}

func badRequest(w http.ResponseWriter, message, details string) {
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func eventToDTO(e Event) EventDTO {
	dto := EventDTO{
		Id:       e.Id,
		Title:    e.Title,
		Category: e.Category,
		TaskType: e.TaskType,
		Start:    e.Start.Format(DateTimeLayout),
		End:      e.End.Format(DateTimeLayout),
		AllDay:   e.AllDay,
		Location: e.Location,
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

func dtoToEvent(dto EventDTO) (Event, error) {
	start, err := time.Parse(DateTimeLayout, dto.Start)
	if err != nil {
		return Event{}, errors.New("start must be in YYYY-MM-DD HH:MM format")
	}
	end, err := time.Parse(DateTimeLayout, dto.End)
	if err != nil {
		return Event{}, errors.New("end must be in YYYY-MM-DD HH:MM format")
	}
	return Event{
		Id:        dto.Id,
		Title:     dto.Title,
		Category:  dto.Category,
		TaskType:  dto.TaskType,
		Start:     start,
		End:       end,
		AllDay:    dto.AllDay,
		Location:  dto.Location,
		Notes:     dto.Notes,
		CreatedAt: parseTimestamp(dto.CreatedAt),
		UpdatedAt: parseTimestamp(dto.UpdatedAt),
	}, nil
}
