package http

import (
	"net/http"

	"github.com/study-link/studylink/internal/library"
)

func ListBooksHandler(books *library.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := books.List(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, 200, list)
	}
}

func ListBookCategoriesHandler(books *library.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := books.Categories(r.Context())
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, 200, cats)
	}
}
