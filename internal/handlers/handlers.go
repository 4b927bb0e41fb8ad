package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"daily-focus/internal/model"
	"daily-focus/internal/service"
)

// Timestamps cross the API as naive local-time strings, no timezone metadata.
const timeLayout = "2006-01-02T15:04:05"

var timeLayouts = []string{timeLayout, "2006-01-02T15:04", "2006-01-02"}

// Handlers exposes the services as a JSON API.
type Handlers struct {
	categories *service.CategoryService
	tasks      *service.TaskService
	schedule   *service.ScheduleService
	analytics  *service.AnalyticsService
}

func New(categories *service.CategoryService, tasks *service.TaskService, schedule *service.ScheduleService, analytics *service.AnalyticsService) *Handlers {
	return &Handlers{
		categories: categories,
		tasks:      tasks,
		schedule:   schedule,
		analytics:  analytics,
	}
}

func (h *Handlers) respond(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func (h *Handlers) error(w http.ResponseWriter, message string, status int) {
	h.respond(w, map[string]string{"error": message}, status)
}

// respondServiceError maps the validation taxonomy to status codes. Anything
// outside it is a store failure and must not leak as a 4xx.
func (h *Handlers) respondServiceError(w http.ResponseWriter, err error) {
	var overlap *service.OverlapError
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidInterval),
		errors.Is(err, service.ErrDuplicateTaskForDay),
		errors.As(err, &overlap):
		h.error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("internal error: %v", err)
		h.error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func parseID(path, prefix string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimPrefix(path, prefix), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func parseNaiveTime(raw string) (time.Time, error) {
	var err error
	for _, layout := range timeLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func formatNaiveTime(t time.Time) string {
	return t.Format(timeLayout)
}

// Health confirms the API and store are wired up.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.respond(w, map[string]string{"status": "Database and API are connected and running!"}, http.StatusOK)
}

// Categories

type categoryResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ColorHex string `json:"color_hex"`
}

func toCategoryResponse(c *model.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, ColorHex: c.ColorHex}
}

func (h *Handlers) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryResponse(&categories[i]))
	}
	h.respond(w, out, http.StatusOK)
}

func (h *Handlers) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		ColorHex string `json:"color_hex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		h.error(w, "Name is required", http.StatusBadRequest)
		return
	}

	category, err := h.categories.CreateCategory(r.Context(), req.Name, req.ColorHex)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respond(w, toCategoryResponse(category), http.StatusCreated)
}

func (h *Handlers) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.URL.Path, "/categories/")
	if !ok {
		h.error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Name     string `json:"name"`
		ColorHex string `json:"color_hex"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	category, err := h.categories.UpdateCategory(r.Context(), id, req.Name, req.ColorHex)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respond(w, toCategoryResponse(category), http.StatusOK)
}

func (h *Handlers) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.URL.Path, "/categories/")
	if !ok {
		h.error(w, "Invalid category ID", http.StatusBadRequest)
		return
	}

	if err := h.categories.DeleteCategory(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respond(w, map[string]string{"status": "deleted"}, http.StatusOK)
}

// Tasks

type taskResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"is_completed"`
	CreatedAt   string `json:"created_at"`
	CategoryID  *uint  `json:"category_id"`
}

func toTaskResponse(t *model.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		IsCompleted: t.IsCompleted,
		CreatedAt:   formatNaiveTime(t.CreatedAt),
		CategoryID:  t.CategoryID,
	}
}

func (h *Handlers) GetTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTaskResponse(&tasks[i]))
	}
	h.respond(w, out, http.StatusOK)
}

func (h *Handlers) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title      string `json:"title"`
		CategoryID *uint  `json:"category_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		h.error(w, "Title is required", http.StatusBadRequest)
		return
	}

	task, err := h.tasks.CreateTask(r.Context(), req.Title, req.CategoryID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respond(w, toTaskResponse(task), http.StatusCreated)
}

func (h *Handlers) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.URL.Path, "/tasks/")
	if !ok {
		h.error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	var req struct {
		IsCompleted bool `json:"is_completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	task, err := h.tasks.SetCompletion(r.Context(), id, req.IsCompleted)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respond(w, toTaskResponse(task), http.StatusOK)
}

func (h *Handlers) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.URL.Path, "/tasks/")
	if !ok {
		h.error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	if err := h.tasks.DeleteTask(r.Context(), id, time.Now()); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respond(w, map[string]string{"status": "success"}, http.StatusOK)
}

// Calendar

type blockResponse struct {
	ID        uint   `json:"id"`
	TaskID    uint   `json:"task_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func toBlockResponse(b *model.TimeBlock) blockResponse {
	return blockResponse{
		ID:        b.ID,
		TaskID:    b.TaskID,
		StartTime: formatNaiveTime(b.StartTime),
		EndTime:   formatNaiveTime(b.EndTime),
	}
}

func (h *Handlers) CreateBlock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskID    uint   `json:"task_id"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	start, err := parseNaiveTime(req.StartTime)
	if err != nil {
		h.error(w, "Invalid start_time", http.StatusBadRequest)
		return
	}
	end, err := parseNaiveTime(req.EndTime)
	if err != nil {
		h.error(w, "Invalid end_time", http.StatusBadRequest)
		return
	}

	block, err := h.schedule.ProposeBlock(r.Context(), req.TaskID, start, end)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respond(w, toBlockResponse(block), http.StatusCreated)
}

func (h *Handlers) GetBlocks(w http.ResponseWriter, r *http.Request) {
	start, err := parseNaiveTime(r.URL.Query().Get("start"))
	if err != nil {
		h.error(w, "Invalid start", http.StatusBadRequest)
		return
	}
	end, err := parseNaiveTime(r.URL.Query().Get("end"))
	if err != nil {
		h.error(w, "Invalid end", http.StatusBadRequest)
		return
	}

	blocks, err := h.schedule.ListBlocks(r.Context(), start, end)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	out := make([]blockResponse, 0, len(blocks))
	for i := range blocks {
		out = append(out, toBlockResponse(&blocks[i]))
	}
	h.respond(w, out, http.StatusOK)
}

func (h *Handlers) DeleteBlock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.URL.Path, "/calendar/block/")
	if !ok {
		h.error(w, "Invalid block ID", http.StatusBadRequest)
		return
	}

	if err := h.schedule.DeleteBlock(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respond(w, map[string]string{"status": "deleted"}, http.StatusOK)
}

// Analytics

func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	start, err := parseNaiveTime(r.URL.Query().Get("start_date"))
	if err != nil {
		h.error(w, "Invalid start_date", http.StatusBadRequest)
		return
	}
	end, err := parseNaiveTime(r.URL.Query().Get("end_date"))
	if err != nil {
		h.error(w, "Invalid end_date", http.StatusBadRequest)
		return
	}

	report, err := h.analytics.BuildDashboard(r.Context(), start, end)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respond(w, report, http.StatusOK)
}

func (h *Handlers) GetStreak(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.URL.Path, "/analytics/streak/")
	if !ok {
		h.error(w, "Invalid task ID", http.StatusBadRequest)
		return
	}

	report, err := h.analytics.ComputeStreak(r.Context(), id, time.Now())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respond(w, report, http.StatusOK)
}
