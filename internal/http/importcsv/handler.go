package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/fleetledger/internal/http/respond"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledgercsv"
)

const maxUploadSize = 10 << 20

type Handler struct {
	importer *ledgercsv.Importer
}

func NewHandler(importer *ledgercsv.Importer) *Handler {
	return &Handler{importer: importer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.importer.Import(r.Context(), file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	respond.JSON(w, http.StatusOK, result)
}
