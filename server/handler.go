package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tsawler/notedeck/assets"
	"github.com/tsawler/notedeck/branding"
	"github.com/tsawler/notedeck/deck"
	"github.com/tsawler/notedeck/model"
	"github.com/tsawler/notedeck/notesrc"
	"github.com/tsawler/notedeck/ocr"
	"github.com/tsawler/notedeck/pptx"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": 1})
}

func (s *Server) createDeck(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(s.opts.MaxUploadMB)<<20)

	// Uploads live in a request-unique directory removed after the response.
	dir := filepath.Join(s.opts.TempDir, "notedeck-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o700); err != nil {
		internalError(c, err)
		return
	}
	defer os.RemoveAll(dir)

	notesText, err := s.readNotes(c)
	if err != nil {
		s.fail(c, err)
		return
	}

	templateHeader, err := c.FormFile("template")
	if err != nil {
		badRequest(c, "template is required")
		return
	}
	templatePath := filepath.Join(dir, "template.pptx")
	if err := c.SaveUploadedFile(templateHeader, templatePath); err != nil {
		internalError(c, err)
		return
	}
	template, err := os.ReadFile(templatePath)
	if err != nil {
		internalError(c, err)
		return
	}

	brandOpts, err := s.brandingOptions(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	resolver := s.opts.Assets
	if logoHeader, err := c.FormFile("logo"); err == nil {
		name := "logo" + strings.ToLower(filepath.Ext(logoHeader.Filename))
		if err := c.SaveUploadedFile(logoHeader, filepath.Join(dir, name)); err != nil {
			internalError(c, err)
			return
		}
		brandOpts.Logo = name
		local := assets.DirResolver{Root: dir}
		if resolver == nil {
			resolver = local
		} else {
			resolver = assets.Chain{local, resolver}
		}
	}

	req := deck.Request{
		Notes:    notesText,
		Template: template,
		Branding: branding.New(brandOpts, s.source()),
		Key:      uuid.NewString() + ".pptx",
	}
	opts := deck.Options{Assets: resolver, Icons: s.opts.Icons, Logger: s.log}

	var (
		data    []byte
		summary deck.Summary
	)
	if s.opts.Store != nil {
		res, err := deck.Generate(c.Request.Context(), req, s.opts.Store, opts)
		if err != nil {
			s.fail(c, err)
			return
		}
		data, summary = res.Data, res.Summary
		c.Header("X-Deck-Location", res.Location)
	} else {
		data, summary, err = deck.Build(c.Request.Context(), req, opts)
		if err != nil {
			s.fail(c, err)
			return
		}
	}

	for _, w := range summary.Warnings {
		s.log.Warn("deck warning", zap.String("warning", w.String()))
	}
	c.Header("Content-Disposition", `attachment; filename="deck.pptx"`)
	c.Header("X-Slide-Count", strconv.Itoa(summary.SlideCount()))
	c.Header("X-Warning-Count", strconv.Itoa(len(summary.Warnings)))
	c.Data(http.StatusOK, deck.ContentType, data)
}

// readNotes accepts notes as an uploaded file or as a plain form field.
func (s *Server) readNotes(c *gin.Context) (string, error) {
	header, err := c.FormFile("notes")
	if err == nil {
		data, err := readUpload(header)
		if err != nil {
			return "", err
		}
		return notesrc.Load(header.Filename, data, notesrc.Options{OCR: s.opts.OCR, Logger: s.log})
	}
	if text, ok := c.GetPostForm("notes"); ok {
		return text, nil
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return "", err
	}
	return "", errMissingNotes
}

var errMissingNotes = errors.New("notes are required")

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s *Server) brandingOptions(c *gin.Context) (branding.Options, error) {
	opts := s.opts.Branding
	if text, ok := c.GetPostForm("brand_text"); ok {
		opts.BrandText = text
	}
	for _, f := range []struct {
		field string
		dst   **model.RGB
	}{
		{"primary", &opts.Primary},
		{"accent", &opts.Accent},
		{"background", &opts.Background},
	} {
		v := strings.TrimSpace(c.PostForm(f.field))
		if v == "" {
			continue
		}
		rgb, err := model.ParseHex(v)
		if err != nil {
			return branding.Options{}, fmt.Errorf("%s: %w", f.field, err)
		}
		*f.dst = &rgb
	}
	return opts, nil
}

// fail maps pipeline errors to responses.
func (s *Server) fail(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError
	switch {
	case errors.Is(err, errMissingNotes):
		badRequest(c, err.Error())
	case errors.As(err, &maxErr):
		abort(c, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, pptx.ErrMalformedTemplate),
		errors.Is(err, notesrc.ErrUnsupported),
		errors.Is(err, ocr.ErrOCRNotEnabled):
		unprocessable(c, err.Error())
	default:
		s.log.Error("deck generation failed", zap.Error(err))
		internalError(c, err)
	}
}
