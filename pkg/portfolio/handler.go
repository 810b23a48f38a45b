package portfolio

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/rest"
)

type PieceDTO struct {
	Id         string `json:"id,omitempty"`
	Title      string `json:"title"`
	ClayBody   string `json:"clayBody,omitempty"`
	Glaze      string `json:"glaze,omitempty"`
	Technique  string `json:"technique,omitempty"`
	Status     string `json:"status,omitempty"`
	Price      string `json:"price,omitempty"`
	Rating     int    `json:"rating,omitempty"`
	PhotoPath  string `json:"photoPath,omitempty"`
	FinishedOn string `json:"finishedOn,omitempty"`
	Notes      string `json:"notes,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
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

func (h *Handler) CreatePiece(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Creating portfolio piece")

	var dto PieceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		badRequest(w, "Invalid request body format", "")
		return
	}
	piece, err := dtoToPiece(dto)
	if err != nil {
		badRequest(w, "Invalid piece", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), piece)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			badRequest(w, "Invalid piece", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(pieceToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetPieces(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter, err := filterFromQuery(r)
	if err != nil {
		badRequest(w, "Invalid filter", err.Error())
		return
	}

	pieces, err := h.service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := make([]PieceDTO, 0, len(pieces))
	for _, p := range pieces {
		response = append(response, pieceToDTO(p))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdatePiece(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	pieceId := mux.Vars(r)["pieceId"]

	var dto PieceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		badRequest(w, "Invalid request body format", "")
		return
	}
	if dto.Id == "" {
		dto.Id = pieceId
	}
	if dto.Id != pieceId {
		badRequest(w, "Invalid piece id in request body", "")
		return
	}

	piece, err := dtoToPiece(dto)
	if err != nil {
		badRequest(w, "Invalid piece", err.Error())
		return
	}

	ok, err := h.service.Update(r.Context(), piece)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			badRequest(w, "Invalid piece", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Piece not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(pieceToDTO(piece)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) DeletePiece(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	pieceId := mux.Vars(r)["pieceId"]

	ok, err := h.service.Delete(r.Context(), pieceId)
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

func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	pieceId := mux.Vars(r)["pieceId"]
	log.Tracef("Uploading photo for piece %s", pieceId)

	// Enforce a hard limit of 3MB on the request body
	r.Body = http.MaxBytesReader(w, r.Body, 3<<20)
	if err := r.ParseMultipartForm(3 << 20); err != nil {
		log.Debugf("File is too large: %v", err)
		badRequest(w, "Image is too large", "Maximum size is 3MB. Please try again with a smaller image.")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()
	log.Debugf("Uploaded file: %s (%d bytes)", header.Filename, header.Size)

	photo, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.StorePhoto(r.Context(), pieceId, photo); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "Piece not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	pieceId := mux.Vars(r)["pieceId"]

	photo, err := h.service.GetPhoto(r.Context(), pieceId)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(photo))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(photo); err != nil {
		log.Errorf("failed to write photo response: %v", err)
	}
}

func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	pieceId := mux.Vars(r)["pieceId"]

	if err := h.service.DeletePhoto(r.Context(), pieceId); err != nil {
		if errors.Is(err, ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
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

	pieces, err := h.service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	schema := Schema()
	rows := make([][]string, 0, len(pieces))
	for _, p := range pieces {
		rows = append(rows, schema.Encode(p))
	}
	csv, err := h.csvRenderer.Render(schema.Columns, rows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio_export.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(csv)); err != nil {
		log.Errorf("failed to write csv response: %v", err)
	}
}

func filterFromQuery(r *http.Request) (Filter, error) {
	query := r.URL.Query()
	filter := Filter{
		Status: query.Get("status"),
		Search: query.Get("search"),
	}
	if minRating := query.Get("minRating"); minRating != "" {
		parsed, err := strconv.Atoi(minRating)
		if err != nil {
			return Filter{}, errors.New("minRating must be an integer")
		}
		filter.MinRating = parsed
	}
	return filter, nil
}

func badRequest(w http.ResponseWriter, message, details string) {
	w.WriteHeader(http.StatusBadRequest)
	if err := json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func pieceToDTO(p Piece) PieceDTO {
	dto := PieceDTO{
		Id:        p.Id,
		Title:     p.Title,
		ClayBody:  p.ClayBody,
		Glaze:     p.Glaze,
		Technique: p.Technique,
		Status:    p.Status,
		Price:     p.Price.String(),
		Rating:    p.Rating,
		PhotoPath: p.PhotoPath,
		Notes:     p.Notes,
	}
	if !p.FinishedOn.IsZero() {
		dto.FinishedOn = p.FinishedOn.Format(DateLayout)
	}
	if !p.CreatedAt.IsZero() {
		dto.CreatedAt = p.CreatedAt.Format(TimestampLayout)
	}
	if !p.UpdatedAt.IsZero() {
		dto.UpdatedAt = p.UpdatedAt.Format(TimestampLayout)
	}
	return dto
}

func dtoToPiece(dto PieceDTO) (Piece, error) {
	price := decimal.Zero
	if dto.Price != "" {
		parsed, err := decimal.NewFromString(dto.Price)
		if err != nil {
			return Piece{}, errors.New("price must be a decimal number")
		}
		price = parsed
	}
	var finishedOn time.Time
	if dto.FinishedOn != "" {
		parsed, err := time.Parse(DateLayout, dto.FinishedOn)
		if err != nil {
			return Piece{}, errors.New("finishedOn must be in YYYY-MM-DD format")
		}
		finishedOn = parsed
	}
	return Piece{
		Id:         dto.Id,
		Title:      dto.Title,
		ClayBody:   dto.ClayBody,
		Glaze:      dto.Glaze,
		Technique:  dto.Technique,
		Status:     dto.Status,
		Price:      price,
		Rating:     dto.Rating,
		PhotoPath:  dto.PhotoPath,
		FinishedOn: finishedOn,
		Notes:      dto.Notes,
	}, nil
}
