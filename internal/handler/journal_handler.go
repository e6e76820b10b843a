package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipeshare/internal/service"
)

// SubmitJournalEntry 处理 multipart 表单：title、content 与可选的 image
func (a *API) SubmitJournalEntry(c *gin.Context) {
	input := service.JournalInput{
		Title:   c.PostForm("title"),
		Content: c.PostForm("content"),
	}

	file, err := c.FormFile("image")
	switch {
	case err == nil:
		src, err := file.Open()
		if err != nil {
			respondError(c, http.StatusBadRequest, msgUnreadableImage)
			return
		}
		defer src.Close()
		input.Image = src
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		respondError(c, http.StatusBadRequest, msgBadForm)
		return
	}

	entry, err := a.journal.Add(c.Request.Context(), input)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newJournalEntryView(entry))
}

// ListJournalEntries 返回当前用户的日志
func (a *API) ListJournalEntries(c *gin.Context) {
	userID, ok := service.CurrentUserID(c.Request.Context())
	if !ok {
		respondError(c, http.StatusUnauthorized, msgNotLoggedIn)
		return
	}

	entries, err := a.journal.ListForUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newJournalEntryViews(entries))
}

// GetJournalEntry 返回当前用户的一篇日志，他人的日志按不存在处理
func (a *API) GetJournalEntry(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	userID, ok := service.CurrentUserID(c.Request.Context())
	if !ok {
		respondError(c, http.StatusUnauthorized, msgNotLoggedIn)
		return
	}

	entry, err := a.journal.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if entry.UserID != userID {
		handleServiceError(c, service.ErrJournalNotFound)
		return
	}
	c.JSON(http.StatusOK, newJournalEntryView(entry))
}
