package handlers

import "net/http"

// Router builds the API mux. Collection routes dispatch on method; item
// routes carry the id in the path.
func (h *Handlers) Router() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetCategories(w, r)
		case http.MethodPost:
			h.CreateCategory(w, r)
		default:
			h.error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/categories/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			h.UpdateCategory(w, r)
		case http.MethodDelete:
			h.DeleteCategory(w, r)
		default:
			h.error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.GetTasks(w, r)
		case http.MethodPost:
			h.CreateTask(w, r)
		default:
			h.error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/tasks/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			h.UpdateTask(w, r)
		case http.MethodDelete:
			h.DeleteTask(w, r)
		default:
			h.error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/calendar/block", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			h.error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.CreateBlock(w, r)
	})

	mux.HandleFunc("/calendar/blocks", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			h.error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.GetBlocks(w, r)
	})

	mux.HandleFunc("/calendar/block/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			h.error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.DeleteBlock(w, r)
	})

	mux.HandleFunc("/analytics/dashboard", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			h.error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.GetDashboard(w, r)
	})

	mux.HandleFunc("/analytics/streak/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			h.error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.GetStreak(w, r)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			h.error(w, "Not found", http.StatusNotFound)
			return
		}
		h.Health(w, r)
	})

	return mux
}
