package handler

import (
	"net/http"

	apimw "github.com/ricirt/dummy-predictor/internal/api/middleware"
	"github.com/ricirt/dummy-predictor/internal/domain"
	"github.com/ricirt/dummy-predictor/internal/service"
)

// PredictHandler serves the placeholder model.
type PredictHandler struct {
	svc *service.PredictionService
}

func NewPredictHandler(svc *service.PredictionService) *PredictHandler {
	return &PredictHandler{svc: svc}
}

// Predict handles GET and POST /predict.
//
// A POST whose body is well-typed JSON is echoed back under "input".
// Anything else, including a malformed body, gets the bare prediction:
// this endpoint never rejects a request.
//
// @Summary  Dummy prediction
// @Tags     predict
// @Accept   json
// @Produce  json
// @Param    body  body      object             false  "Arbitrary JSON value, echoed as input"
// @Success  200   {object}  domain.Prediction
// @Router   /predict [get]
// @Router   /predict [post]
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	req := domain.PredictRequest{
		Method:        r.Method,
		CorrelationID: apimw.GetCorrelationID(r.Context()),
		RemoteAddr:    r.RemoteAddr,
	}
	if r.Method == http.MethodPost {
		req.Input = jsonInput(r)
	}

	respondJSON(w, http.StatusOK, h.svc.Predict(r.Context(), req))
}
