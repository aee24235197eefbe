//go:build ignore

// Dev server for the web build.
//
// usage :
//	go run build.go web
//	go run run_web.go
//
// Serves ./web_build with caching disabled, so rebuilding the wasm and
// refreshing the browser is enough to see changes.

package main

import (
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Artwalters/portthreefiber-sub000/misc"
)

var (
	WebBuildDir string
	Port        uint
)

func init() {
	flag.StringVar(&WebBuildDir, "dir", "./web_build", "folder holding the web build")
	flag.UintVar(&Port, "port", 8080, "port to listen on")
}

func main() {
	flag.Parse()

	if Port > math.MaxUint16 {
		misc.ErrLogger.Printf("port %v is bigger than max port value", Port)
		os.Exit(1)
	}

	if !filepath.IsLocal(WebBuildDir) {
		misc.ErrLogger.Printf("%s is not a local folder", WebBuildDir)
		os.Exit(1)
	}

	wasmPath := filepath.Join(WebBuildDir, "portfolio.wasm")
	if exists, err := misc.CheckFileExists(wasmPath); err == nil && !exists {
		misc.WarnLogger.Printf("%s doesn't exist, run \"go run build.go web\" first", wasmPath)
	}

	misc.InfoLogger.Printf("serving %s", WebBuildDir)
	misc.InfoLogger.Printf("listening on http://localhost:%v", Port)

	files := http.FileServer(http.Dir(WebBuildDir))
	err := http.ListenAndServe(fmt.Sprintf(":%v", Port), noCache(files))
	if err != nil {
		misc.ErrLogger.Printf("server quit : %v", err)
		os.Exit(1)
	}
}

var epoch = time.Unix(0, 0).Format(time.RFC1123)

// browsers hang on to stale wasm; turn caching off outright
func noCache(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, header := range []string{
			"ETag", "If-Modified-Since", "If-Match",
			"If-None-Match", "If-Range", "If-Unmodified-Since",
		} {
			r.Header.Del(header)
		}

		w.Header().Set("Expires", epoch)
		w.Header().Set("Cache-Control", "no-cache, private, max-age=0")
		w.Header().Set("Pragma", "no-cache")

		h.ServeHTTP(w, r)
	})
}
