package handlers

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/gwodu/VoiceDub/internal/elevenlabs"
	"github.com/gwodu/VoiceDub/internal/languages"
	"github.com/gwodu/VoiceDub/internal/store"
	"github.com/gwodu/VoiceDub/internal/types"
)

// Translator performs the cross-language audio conversion. Satisfied by
// *elevenlabs.Client; tests substitute a stub.
type Translator interface {
	Translate(ctx context.Context, req elevenlabs.Request) ([]byte, error)
}

// TranslateHandler handles audio translation requests
type TranslateHandler struct {
	store      store.Store
	translator Translator
	maxSizeMB  int
}

// NewTranslateHandler creates a new translate handler
func NewTranslateHandler(s store.Store, translator Translator, maxSizeMB int) *TranslateHandler {
	return &TranslateHandler{
		store:      s,
		translator: translator,
		maxSizeMB:  maxSizeMB,
	}
}

// Handle processes a translation request: validate the multipart input,
// record the job, run the provider workflow, and stream back the dubbed
// audio. Exactly two store mutations happen per request: the create and
// the final status update.
func (h *TranslateHandler) Handle(c *fiber.Ctx) error {
	file, err := c.FormFile("audio")
	targetLanguage := c.FormValue("targetLanguage")
	if err != nil || targetLanguage == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing audio file or target language",
		})
	}

	if !languages.IsSupported(targetLanguage) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unsupported target language",
		})
	}

	sourceLanguage := c.FormValue("sourceLanguage")
	if sourceLanguage == "" {
		sourceLanguage = languages.Default().Code
	} else if !languages.IsSupported(sourceLanguage) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Unsupported source language",
		})
	}

	if !strings.HasPrefix(file.Header.Get("Content-Type"), "audio/") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Uploaded file must be audio",
		})
	}

	maxSize := int64(h.maxSizeMB) * 1024 * 1024
	if file.Size > maxSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Audio file too large (max %dMB)", h.maxSizeMB),
		})
	}

	f, err := file.Open()
	if err != nil {
		log.Printf("Failed to open uploaded audio: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to read audio file",
		})
	}
	audio, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		log.Printf("Failed to read uploaded audio: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to read audio file",
		})
	}

	translation := h.store.Create(types.InsertTranslation{
		OriginalAudio:  base64.StdEncoding.EncodeToString(audio),
		SourceLanguage: sourceLanguage,
		TargetLanguage: targetLanguage,
	})
	log.Printf("Translation %d created (%s -> %s, %d bytes)",
		translation.ID, sourceLanguage, targetLanguage, len(audio))

	// Upload name handed to the provider; the original filename may be
	// absent for browser recordings.
	uploadName := uuid.New().String() + extensionFor(file.Filename)

	translated, err := h.translator.Translate(c.Context(), elevenlabs.Request{
		Audio:          audio,
		FileName:       uploadName,
		SourceLanguage: sourceLanguage,
		TargetLanguage: targetLanguage,
	})
	if err != nil {
		log.Printf("Translation %d failed: %v", translation.ID, err)
		h.finish(translation.ID, types.TranslationPatch{Status: ptr(types.StatusFailed)})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Translation failed",
		})
	}

	h.finish(translation.ID, types.TranslationPatch{
		Status:          ptr(types.StatusCompleted),
		TranslatedAudio: ptr(base64.StdEncoding.EncodeToString(translated)),
	})
	log.Printf("Translation %d completed (%d bytes)", translation.ID, len(translated))

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	return c.Send(translated)
}

func (h *TranslateHandler) finish(id int, patch types.TranslationPatch) {
	if _, err := h.store.Update(id, patch); err != nil {
		log.Printf("Failed to update translation %d: %v", id, err)
	}
}

func extensionFor(filename string) string {
	if ext := filepath.Ext(filename); ext != "" {
		return ext
	}
	return ".wav"
}

func ptr(s string) *string {
	return &s
}
