package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/themobileprof/healthdesk-be/internal/api/middleware"
	"github.com/themobileprof/healthdesk-be/internal/history"
	"github.com/themobileprof/healthdesk-be/internal/knowledge"
)

var errInvalidSex = errors.New("sex must be M or F")

// parseSex accepts an empty value as unknown and rejects anything else
// that is not a recognised spelling of M or F
func parseSex(raw string) (knowledge.Sex, error) {
	if strings.TrimSpace(raw) == "" {
		return knowledge.SexUnknown, nil
	}
	sex := knowledge.ParseSex(raw)
	if sex == knowledge.SexUnknown {
		return sex, errInvalidSex
	}
	return sex, nil
}

// respondRecorded writes body with the engine result under "result" and
// stores the call in history when the caller is signed in
func respondRecorded(c *gin.Context, rec *history.Recorder, entry history.Entry, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["result"] = entry.Result

	entry.UserID = middleware.GetUserID(c)
	if a := rec.Record(c.Request.Context(), entry); a != nil {
		body["assessment_id"] = a.ID
	}

	c.JSON(http.StatusOK, body)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
