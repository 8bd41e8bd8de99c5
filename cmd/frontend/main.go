package main

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed templates/*.gohtml
var tplFS embed.FS

//go:embed all:static
var staticFS embed.FS

type App struct {
	API string
	WS  string
}

func main() {
	api := getenv("API_URL", "http://localhost:3002")
	ws := getenv("WS_URL", "")
	port := getenv("PORT", "5175")

	app := &App{API: api, WS: ws}

	log.Printf("musicquiz frontend on :%s (API=%s, WS=%s)", port, api, ws)
	log.Fatal(http.ListenAndServe(":"+port, app.Router(middleware.Logger, middleware.Recoverer)))
}

func (a *App) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/", a.page("player.gohtml"))

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("musicquiz frontend: static assets: %v", err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	return r
}

func (a *App) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tpl, err := template.ParseFS(tplFS, "templates/base.gohtml", "templates/"+name)
		if err != nil {
			http.Error(w, "template error", 500)
			return
		}

		data := map[string]any{
			"API":  a.API,
			"WS":   a.WS,
			"Path": r.URL.Path,
		}
		if err := tpl.ExecuteTemplate(w, "base", data); err != nil {
			http.Error(w, err.Error(), 500)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
