package admin

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/http/httputil"
	"net/url"
	"path"
	"strconv"

	"go.uber.org/zap"

	"github.com/foomo/editor-prevnext/inject"
	"github.com/foomo/editor-prevnext/render"
	"github.com/foomo/editor-prevnext/service"
)

type ProxyConfig struct {
	// EditPath is the editor page, matched against the last path segment.
	EditPath string
	// Container is the selector the fragment is appended to.
	Container string
}

// NewProxy forwards requests to the host admin and injects the registered
// boxes into editor pages of existing items.
func NewProxy(logger *zap.Logger, target *url.URL, svc service.Service, registry *Registry, config ProxyConfig) *httputil.ReverseProxy {
	if config.EditPath == "" {
		config.EditPath = "post.php"
	}
	config.EditPath = path.Base(config.EditPath)
	if config.Container == "" {
		config.Container = inject.DefaultContainer
	}
	proxy := httputil.NewSingleHostReverseProxy(target)
	director := proxy.Director
	proxy.Director = func(r *http.Request) {
		director(r)
		// pages are rewritten, so they have to arrive uncompressed
		r.Header.Del("Accept-Encoding")
	}
	proxy.ModifyResponse = func(resp *http.Response) error {
		return injectNavigation(logger, svc, registry, config, resp)
	}
	return proxy
}

func isEditorResponse(config ProxyConfig, resp *http.Response) bool {
	r := resp.Request
	if r == nil || r.Method != http.MethodGet || resp.StatusCode != http.StatusOK {
		return false
	}
	if path.Base(r.URL.Path) != config.EditPath || r.URL.Query().Get("action") != "edit" {
		return false
	}
	if resp.Header.Get("Content-Encoding") != "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return err == nil && mediaType == "text/html"
}

func injectNavigation(logger *zap.Logger, svc service.Service, registry *Registry, config ProxyConfig, resp *http.Response) error {
	if !isEditorResponse(config, resp) {
		return nil
	}
	page, ok := pageContext(resp.Request)
	if !ok {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return err
	}
	restore := func() {
		resp.Body = io.NopCloser(bytes.NewReader(body))
	}

	doc, err := inject.Parse(bytes.NewReader(body))
	if err != nil {
		logger.Warn("failed to parse editor page", zap.Int64("id", int64(page.ItemID)), zap.Error(err))
		restore()
		return nil
	}
	ctx := resp.Request.Context()
	if page.Type == "" {
		page.Type = svc.ItemType(ctx, page.ItemID)
	}
	injected := 0
	into := inject.Into(doc, config.Container)
	err = registry.Compose(ctx, page, func(fragment render.Fragment) error {
		if err := into(fragment); err != nil {
			return err
		}
		injected++
		return nil
	})
	if err != nil {
		if errors.Is(err, inject.ErrContainerNotFound) {
			logger.Debug("no navigation container on page", zap.String("title", doc.Title()), zap.Int64("id", int64(page.ItemID)))
		} else {
			logger.Warn("failed to inject navigation", zap.Int64("id", int64(page.ItemID)), zap.Error(err))
		}
		restore()
		return nil
	}
	if injected == 0 {
		restore()
		return nil
	}

	var out bytes.Buffer
	if err := doc.Render(&out); err != nil {
		logger.Warn("failed to render editor page", zap.Int64("id", int64(page.ItemID)), zap.Error(err))
		restore()
		return nil
	}
	resp.Body = io.NopCloser(&out)
	resp.ContentLength = int64(out.Len())
	resp.Header.Set("Content-Length", strconv.Itoa(out.Len()))
	return nil
}
