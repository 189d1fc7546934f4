package controllers

import (
	json "github.com/goccy/go-json"
	"net/http"
	"time"
	"tracespace/internal/models"
	"tracespace/internal/providers"
	"tracespace/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.SnapshotServiceInterface
	cache   providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, service services.SnapshotServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func getSource(r *http.Request) string {
	src := r.URL.Query().Get("src")
	if src == "" {
		return models.SourceFull
	}
	return src
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// GetLatest serves the newest snapshot for a source. 404 while the source
// has produced nothing recent; absence is not cached.
func (ac *ApiController) GetLatest(w http.ResponseWriter, r *http.Request) {
	src := getSource(r)
	cacheKey := "latest:" + src

	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	snap, err := ac.service.LatestSnapshot(src)
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Latest snapshot lookup for %s failed: %s", src, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if snap == nil {
		http.Error(w, "No data available yet", http.StatusNotFound)
		return
	}

	gson, err := json.Marshal(snap)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// GetRange serves all snapshots for a source between two dates inclusive.
func (ac *ApiController) GetRange(w http.ResponseWriter, r *http.Request) {
	src := getSource(r)
	from, err := time.ParseInLocation(models.DateLayout, r.URL.Query().Get("from"), time.Local)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	to, err := time.ParseInLocation(models.DateLayout, r.URL.Query().Get("to"), time.Local)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if from.After(to) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	cacheKey := "range:" + src + ":" + from.Format(models.DateLayout) + ":" + to.Format(models.DateLayout)
	ac.serveFromCacheOrCompute(w, cacheKey, func() (any, error) {
		snaps, err := ac.service.QueryRange(src, from, to)
		if err != nil {
			ac.logger.Errorf(providers.TypeGet, "Range query for %s failed: %s", src, err)
			return nil, err
		}
		if snaps == nil {
			snaps = []*models.Snapshot{}
		}
		return snaps, nil
	})
}

// GetStorage serves the per-tier byte usage report.
func (ac *ApiController) GetStorage(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "storage", func() (any, error) {
		report, err := ac.service.UsageReport()
		if err != nil {
			ac.logger.Errorf(providers.TypeGet, "Usage report failed: %s", err)
			return nil, err
		}
		return report, nil
	})
}

type ingestRequest struct {
	Source  string          `json:"source"`
	Payload json.RawMessage `json:"payload"`
}

type ingestResponse struct {
	Location string `json:"location"`
}

// ReceiveSnapshot ingests an external payload into the hot tier.
func (ac *ApiController) ReceiveSnapshot(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload ingestRequest
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Source == "" || len(payload.Payload) == 0 {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	location, err := ac.service.SaveSnapshot(payload.Payload, payload.Source)
	if err != nil {
		ac.logger.Errorf(providers.TypePost, "Failed to ingest snapshot for %s: %s", payload.Source, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(ingestResponse{Location: location})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(gson)
}
