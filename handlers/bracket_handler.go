package handlers

import (
	"net/http"

	"github.com/Dosada05/bracket-engine/models"
	"github.com/Dosada05/bracket-engine/services"
	"github.com/go-chi/chi/v5"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bs services.BracketService) *BracketHandler {
	return &BracketHandler{bracketService: bs}
}

// LayoutHandler serves GET /api/tournaments/{tournamentID}/brackets/{bracketType}/layout
func (h *BracketHandler) LayoutHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	bracketType, err := models.ParseBracketType(chi.URLParam(r, "bracketType"))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	layout, err := h.bracketService.GetLayout(r.Context(), tournamentID, bracketType)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"layout": layout}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PreviewHandler serves POST /api/preview/bracket
func (h *BracketHandler) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	var input services.PreviewInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	preview, err := h.bracketService.Preview(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"preview": preview}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
