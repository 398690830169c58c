package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"fbbackend/core"
	"fbbackend/models"
	"fbbackend/models/api"
	"fbbackend/services"
)

type FeedbackHTTPHandler struct {
	feedbackService services.FeedbackService
}

func NewFeedbackHTTPHandler(feedbackService services.FeedbackService) *FeedbackHTTPHandler {
	return &FeedbackHTTPHandler{
		feedbackService: feedbackService,
	}
}

// HandleSubmitFeedback accepts a feedback submission and returns its stored ID
func (h *FeedbackHTTPHandler) HandleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	log.Printf("📨 Feedback submission received from %s", r.RemoteAddr)

	var req models.FeedbackSubmission
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Failed to decode feedback body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Message == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}
	if req.RepoURL == "" {
		http.Error(w, "repo_url is required", http.StatusBadRequest)
		return
	}

	fb, err := h.feedbackService.SubmitFeedback(r.Context(), req)
	if err != nil {
		log.Printf("❌ Failed to submit feedback: %v", err)
		h.writeSubmitError(w, err)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, api.FeedbackResponse{
		Status:  "success",
		Message: "Feedback saved",
		ID:      fb.ID,
	})
}

// HandleGetFeedback returns a stored feedback document by its ID
func (h *FeedbackHTTPHandler) HandleGetFeedback(w http.ResponseWriter, r *http.Request) {
	feedbackID := mux.Vars(r)["feedback_id"]
	if !core.IsValidULID(feedbackID) {
		http.Error(w, "feedback ID must be a valid ULID", http.StatusBadRequest)
		return
	}

	feedbackOpt, err := h.feedbackService.GetFeedback(r.Context(), feedbackID)
	if err != nil {
		log.Printf("❌ Failed to get feedback: %v", err)
		http.Error(w, "failed to get feedback", http.StatusInternalServerError)
		return
	}

	fb, found := feedbackOpt.Get()
	if !found {
		http.Error(w, "feedback not found", http.StatusNotFound)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, fb)
}

func (h *FeedbackHTTPHandler) writeSubmitError(w http.ResponseWriter, err error) {
	var persistErr *core.PersistenceError

	switch {
	case errors.Is(err, core.ErrNonActionableFeedback):
		http.Error(w, "feedback was classified as non-actionable", http.StatusBadRequest)
	case errors.As(err, &persistErr):
		http.Error(w, "feedback storage is unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, core.ErrFeedbackRejected):
		http.Error(w, "feedback contains disallowed content", http.StatusBadRequest)
	default:
		http.Error(w, "failed to process feedback", http.StatusInternalServerError)
	}
}

// SetupEndpoints registers the feedback routes on the given router
func (h *FeedbackHTTPHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering feedback endpoints")

	router.HandleFunc("/feedback", h.HandleSubmitFeedback).Methods("POST")
	log.Printf("✅ POST /feedback endpoint registered")

	router.HandleFunc("/feedback/{feedback_id}", h.HandleGetFeedback).Methods("GET")
	log.Printf("✅ GET /feedback/{feedback_id} endpoint registered")
}

func (h *FeedbackHTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
