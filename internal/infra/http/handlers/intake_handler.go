package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/propertypro/leads-backend/internal/infra/http/middleware"
	"github.com/propertypro/leads-backend/internal/usecase"
)

// IntakeHandler serves the public form endpoint, so it carries its own
// per-IP rate limiter.
type IntakeHandler struct {
	SubmitLead  *usecase.SubmitLeadUseCase
	rateLimiter *RateLimiter
}

func NewIntakeHandler(submitLead *usecase.SubmitLeadUseCase) *IntakeHandler {
	return &IntakeHandler{
		SubmitLead:  submitLead,
		rateLimiter: NewRateLimiter(10, time.Minute), // 10 req/min per IP
	}
}

// HandleSubmitForm handles POST /api/submit-form.
func (h *IntakeHandler) HandleSubmitForm(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		respondMessage(w, http.StatusTooManyRequests, false, "Too many requests. Please try again later.")
		return
	}

	var input usecase.SubmitLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondMessage(w, http.StatusBadRequest, false, "Invalid JSON")
		return
	}

	_, err := h.SubmitLead.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			respondMessage(w, http.StatusBadRequest, false, "All fields are required")
			return
		}
		middleware.RecordEmailSent("intake", "error")
		respondMessage(w, http.StatusInternalServerError, false, "Failed to send email. Please try again.")
		return
	}

	middleware.RecordLeadCaptured()
	middleware.RecordEmailSent("intake", "ok")
	respondMessage(w, http.StatusOK, true, "Form submitted successfully. Check your email for the guide.")
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
