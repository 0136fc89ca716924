package admin

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/foomo/editor-prevnext/render"
	"github.com/foomo/editor-prevnext/service"
	"github.com/foomo/editor-prevnext/service/vo"
)

type Handler struct {
	logger   *zap.Logger
	service  service.Service
	registry *Registry
	mux      *http.ServeMux
}

// NewHandler serves the bare fragment at <basePath>/navigation?post=N.
func NewHandler(logger *zap.Logger, svc service.Service, registry *Registry, basePath string) *Handler {
	h := &Handler{
		logger:   logger,
		service:  svc,
		registry: registry,
		mux:      http.NewServeMux(),
	}
	h.mux.HandleFunc(strings.TrimSuffix(basePath, "/")+"/navigation", h.handleNavigation)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// pageContext reads the item of an admin editor request.
func pageContext(r *http.Request) (vo.PageContext, bool) {
	query := r.URL.Query()
	id, err := strconv.ParseInt(query.Get("post"), 10, 64)
	if err != nil || id <= 0 {
		return vo.PageContext{}, false
	}
	return vo.PageContext{
		ItemID: vo.ItemID(id),
		Type:   query.Get("post_type"),
		Screen: vo.ScreenEdit,
		Admin:  true,
	}, true
}

func (h *Handler) handleNavigation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	page, ok := pageContext(r)
	if !ok {
		http.Error(w, "post must be a positive integer", http.StatusBadRequest)
		return
	}
	if page.Type == "" {
		page.Type = h.service.ItemType(r.Context(), page.ItemID)
	}

	if r.URL.Query().Get("format") == "json" {
		doc, err := h.service.GetNavigation(r.Context(), page)
		if err != nil {
			h.logger.Error("failed to get navigation", zap.Int64("id", int64(page.ItemID)), zap.Error(err))
			http.Error(w, "failed to get navigation", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(doc); err != nil {
			h.logger.Warn("failed to write navigation", zap.Error(err))
		}
		return
	}

	var b strings.Builder
	err := h.registry.Compose(r.Context(), page, func(fragment render.Fragment) error {
		htmlString, err := fragment.HTML()
		if err != nil {
			return err
		}
		b.WriteString(htmlString)
		return nil
	})
	if err != nil {
		h.logger.Error("failed to render navigation", zap.Int64("id", int64(page.ItemID)), zap.Error(err))
		http.Error(w, "failed to render navigation", http.StatusInternalServerError)
		return
	}
	if b.Len() == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(b.String()))
}
