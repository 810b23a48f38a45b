package app

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Calendar events
	r.HandleFunc("/api/event", deps.EventHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/event", deps.EventHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/event/agenda", deps.EventHandler.GetAgenda).Methods("GET")
	r.HandleFunc("/api/event/export", deps.EventHandler.ExportCsv).Methods("GET")
	r.HandleFunc("/api/event/export/ics", deps.EventHandler.ExportIcs).Methods("GET")
	r.HandleFunc("/api/event/export/pdf", deps.EventHandler.ExportPdf).Methods("GET")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/event/{eventId}", deps.EventHandler.DeleteEvent).Methods("DELETE")

	// Studio journal
	r.HandleFunc("/api/journal", deps.JournalHandler.GetEntries).Methods("GET")
	r.HandleFunc("/api/journal", deps.JournalHandler.CreateEntry).Methods("POST")
	r.HandleFunc("/api/journal/export", deps.JournalHandler.ExportCsv).Methods("GET")
	r.HandleFunc("/api/journal/{entryId}", deps.JournalHandler.UpdateEntry).Methods("PUT")
	r.HandleFunc("/api/journal/{entryId}", deps.JournalHandler.DeleteEntry).Methods("DELETE")

	// Portfolio log
	r.HandleFunc("/api/portfolio", deps.PortfolioHandler.GetPieces).Methods("GET")
	r.HandleFunc("/api/portfolio", deps.PortfolioHandler.CreatePiece).Methods("POST")
	r.HandleFunc("/api/portfolio/export", deps.PortfolioHandler.ExportCsv).Methods("GET")
	r.HandleFunc("/api/portfolio/{pieceId}", deps.PortfolioHandler.UpdatePiece).Methods("PUT")
	r.HandleFunc("/api/portfolio/{pieceId}", deps.PortfolioHandler.DeletePiece).Methods("DELETE")
	r.HandleFunc("/api/portfolio/{pieceId}/photo", deps.PortfolioHandler.UploadPhoto).Methods("PUT")
	r.HandleFunc("/api/portfolio/{pieceId}/photo", deps.PortfolioHandler.GetPhoto).Methods("GET")
	r.HandleFunc("/api/portfolio/{pieceId}/photo", deps.PortfolioHandler.DeletePhoto).Methods("DELETE")

	// Goal tracker
	r.HandleFunc("/api/goal", deps.GoalHandler.GetGoals).Methods("GET")
	r.HandleFunc("/api/goal", deps.GoalHandler.CreateGoal).Methods("POST")
	r.HandleFunc("/api/goal/export", deps.GoalHandler.ExportCsv).Methods("GET")
	r.HandleFunc("/api/goal/{goalId}", deps.GoalHandler.UpdateGoal).Methods("PUT")
	r.HandleFunc("/api/goal/{goalId}", deps.GoalHandler.DeleteGoal).Methods("DELETE")

	// Time tracker
	r.HandleFunc("/api/timelog", deps.TimelogHandler.GetEntries).Methods("GET")
	r.HandleFunc("/api/timelog", deps.TimelogHandler.CreateEntry).Methods("POST")
	r.HandleFunc("/api/timelog/summary", deps.TimelogHandler.GetSummary).Methods("GET")
	r.HandleFunc("/api/timelog/export", deps.TimelogHandler.ExportCsv).Methods("GET")
	r.HandleFunc("/api/timelog/{entryId}", deps.TimelogHandler.UpdateEntry).Methods("PUT")
	r.HandleFunc("/api/timelog/{entryId}", deps.TimelogHandler.DeleteEntry).Methods("DELETE")
}
