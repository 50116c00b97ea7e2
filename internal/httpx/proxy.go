package httpx

import (
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// DevProxy forwards requests under mount to upstream, replacing the mount
// prefix with rewrite and presenting the upstream host (change-origin).
func DevProxy(mount, upstream, rewrite string) (gin.HandlerFunc, error) {
	target, err := url.Parse(upstream)
	if err != nil || target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("dev proxy upstream %q: invalid URL", upstream)
	}
	mount = "/" + strings.Trim(mount, "/")
	rewrite = strings.TrimRight("/"+strings.Trim(rewrite, "/"), "/")

	rp := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.URL.Path = joinPath(target.Path, rewritePath(pr.In.URL.Path, mount, rewrite))
			pr.Out.URL.RawPath = ""
			pr.Out.Host = target.Host
			pr.Out.Header.Del("Origin")
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Printf("[proxy] %s %s failed: %v", r.Method, r.URL.Path, err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"upstream unavailable"}`))
		},
	}

	return func(c *gin.Context) {
		rp.ServeHTTP(c.Writer, c.Request)
	}, nil
}

func rewritePath(p, mount, rewrite string) string {
	if p == mount {
		return rewrite
	}
	if strings.HasPrefix(p, mount+"/") {
		return rewrite + strings.TrimPrefix(p, mount)
	}
	return p
}

func joinPath(base, p string) string {
	base = strings.TrimRight(base, "/")
	if base == "" {
		return p
	}
	return base + p
}
