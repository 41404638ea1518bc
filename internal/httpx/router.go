package httpx

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ambernotes/revops-etl/internal/pipeline"
	"github.com/ambernotes/revops-etl/internal/store"
	"github.com/ambernotes/revops-etl/internal/utils"
)

func NewRouter(log *slog.Logger, p *pipeline.Pipeline, st *store.MemoryStore) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Post("/pipeline/run", func(w http.ResponseWriter, r *http.Request) {
		doc, err := p.Run(r.Context())
		if err != nil {
			log.Error("pipeline run failed", slog.String("err", err.Error()), slog.String("rid", utils.RID(r.Context())))
			http.Error(w, err.Error(), 502)
			return
		}
		st.Set(doc)
		writeJSON(w, map[string]any{"updatedAt": doc.UpdatedAt, "weeks": doc.KPIs.ActiveWeeks})
	})

	mux.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		doc := st.Latest()
		if doc == nil {
			http.Error(w, "no run yet", 404)
			return
		}
		writeJSON(w, doc)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
