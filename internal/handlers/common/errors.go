// Package common holds the response helpers shared by every handler package.
package common

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BhavyaReddySomu/SEM2-WEEK6-WORK/internal/errdefs"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorMapping struct {
	sentinel error
	status   int
	code     string
	// strip drops the sentinel text so only the detail is shown.
	strip bool
}

// Order matters: ErrForbidden and ErrUnauthenticated share their text.
var mappings = []errorMapping{
	{errdefs.ErrValidation, http.StatusBadRequest, "invalid_request", true},
	{errdefs.ErrAlreadyExists, http.StatusBadRequest, "conflict", true},
	{errdefs.ErrUserNotFound, http.StatusBadRequest, "invalid_grant", false},
	{errdefs.ErrInvalidCredentials, http.StatusBadRequest, "invalid_grant", false},
	{errdefs.ErrAlreadyEnrolled, http.StatusBadRequest, "already_enrolled", false},
	{errdefs.ErrUnauthenticated, http.StatusForbidden, "forbidden", false},
	{errdefs.ErrForbidden, http.StatusForbidden, "forbidden", false},
	{errdefs.ErrInvalidToken, http.StatusForbidden, "forbidden", false},
	{errdefs.ErrCourseNotFound, http.StatusNotFound, "not_found", false},
}

// StatusOf returns the HTTP status and error code for err.
func StatusOf(err error) (int, string) {
	for _, m := range mappings {
		if errors.Is(err, m.sentinel) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, "server_error"
}

// WriteError answers with {"error": code, "message": text}. Unmapped
// errors become 500 and are logged.
func WriteError(c *gin.Context, logger *zap.Logger, err error) {
	_ = c.Error(err)
	status, code := StatusOf(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": code, "message": err.Error()})
		return
	}
	c.JSON(status, gin.H{"error": code, "message": Message(err)})
}

// Message renders a mapped error as a sentence. For validation and conflict
// errors only the detail after the sentinel is kept, whatever wraps it.
func Message(err error) string {
	msg := err.Error()
	for _, m := range mappings {
		if !errors.Is(err, m.sentinel) {
			continue
		}
		if prefix := m.sentinel.Error() + ": "; m.strip {
			if i := strings.Index(msg, prefix); i >= 0 {
				msg = msg[i+len(prefix):]
			}
		}
		return Sentence(msg)
	}
	return Sentence(msg)
}

// Sentence turns "access denied: only students can enroll" into
// "Access denied. Only students can enroll."
func Sentence(msg string) string {
	parts := strings.Split(msg, ": ")
	for i, p := range parts {
		parts[i] = upperFirst(strings.TrimSpace(p))
	}
	out := strings.Join(parts, ". ")
	if out != "" && !strings.HasSuffix(out, ".") {
		out += "."
	}
	return out
}

func upperFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}

// BindJSON decodes the body into dst. An empty body leaves dst zero so the
// caller's validation reports the missing fields; malformed JSON answers 400.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": "Malformed JSON body."})
		return false
	}
	return true
}
