package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
)

// flashCookie carries a toast across a full-page redirect, where the
// HX-Trigger header is lost. The layout script reads and clears it.
const flashCookie = "sq_flash"

// SetToast queues a toast notification for the client. HTMX requests
// pick it up from the HX-Trigger response header; plain redirects read
// the short-lived flash cookie instead. An existing HX-Trigger value is
// merged rather than replaced so other queued events survive.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	payload := map[string]string{
		"message": message,
		"type":    toastType,
	}

	trigger := map[string]any{"showToast": payload}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		var merged map[string]any
		if err := json.Unmarshal([]byte(existing), &merged); err != nil {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
		} else {
			merged["showToast"] = payload
			trigger = merged
		}
	}

	if data, err := json.Marshal(trigger); err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
	} else {
		e.Response.Header().Set("HX-Trigger", string(data))
	}

	if flash, err := json.Marshal(payload); err == nil {
		http.SetCookie(e.Response, &http.Cookie{
			Name:     flashCookie,
			Value:    url.QueryEscape(string(flash)),
			Path:     "/",
			MaxAge:   10,
			HttpOnly: false, // the layout script reads it after the redirect
			SameSite: http.SameSiteLaxMode,
		})
	}
}

// ErrorToast reports a failure as a toast. HX-Reswap: none keeps HTMX
// from swapping the plain-text body into the page, so only the toast
// event reaches the user.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}
