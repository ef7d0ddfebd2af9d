package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"expenseanalyzer/internal/model"
	"expenseanalyzer/internal/service"
	"expenseanalyzer/internal/web"
)

// analysisResponse is the JSON body returned by a successful analysis.
type analysisResponse struct {
	Analysis string `json:"analysis"`
	Model    string `json:"model"`
}

// IndexPage renders the upload form with the warning banner.
//
// @Summary Analyzer form
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router / [get]
func IndexPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return renderPage(c, web.NewPage(service.AcceptedExtensions))
	}
}

// AnalyzeForm handles the form submission and renders the result or an error banner.
//
// @Summary Analyze an expense (form)
// @Accept multipart/form-data
// @Produce html
// @Param file formData file true "Receipt, bill, statement or screenshot (PNG/JPG/JPEG/PDF)"
// @Param context formData string true "Why the purchase was made"
// @Success 200 {string} string "HTML page with analysis or error banner"
// @Router /analyze [post]
func AnalyzeForm(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userText := c.FormValue("context")
		page := web.NewPage(service.AcceptedExtensions)
		page.Context = userText

		doc, err := uploadedDocument(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
		}

		res, err := svc.Analyze(c.UserContext(), doc, userText)
		if err != nil {
			var vErr *service.ValidationError
			if !errors.As(err, &vErr) {
				return err
			}
			page.Error = vErr.Message
			return renderPage(c, page)
		}

		if !res.Succeeded() {
			return renderPage(c, page.WithFailure(res.Failure()))
		}

		return renderPage(c, page.WithAnalysis(res.Text))
	}
}

// AnalyzeAPI handles the same inputs as AnalyzeForm and returns JSON.
//
// @Summary Analyze an expense
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Receipt, bill, statement or screenshot (PNG/JPG/JPEG/PDF)"
// @Param context formData string true "Why the purchase was made"
// @Success 200 {object} analysisResponse
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/analyses [post]
func AnalyzeAPI(svc service.AnalysisService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := uploadedDocument(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
		}

		res, err := svc.Analyze(c.UserContext(), doc, c.FormValue("context"))
		if err != nil {
			var vErr *service.ValidationError
			if errors.As(err, &vErr) {
				return writeError(c, fiber.StatusBadRequest, vErr.Code(), vErr.Message)
			}
			return err
		}

		if !res.Succeeded() {
			return writeError(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", res.Failure())
		}

		return c.JSON(analysisResponse{Analysis: res.Text, Model: svc.Model()})
	}
}

// uploadedDocument reads the "file" form part into memory.
// A missing part or a non-multipart body yields a nil document; the validator reports it.
func uploadedDocument(c *fiber.Ctx) (*model.UploadedDocument, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read uploaded file: %w", err)
	}

	ct, ok := service.ContentTypeFor(fh.Filename)
	if !ok {
		ct = fh.Header.Get("Content-Type")
	}

	slog.DebugContext(c.UserContext(), "upload received", "size", len(data), "content_type", ct)

	return &model.UploadedDocument{
		Filename:    fh.Filename,
		ContentType: ct,
		Data:        data,
	}, nil
}

func renderPage(c *fiber.Ctx, page web.Page) error {
	var buf bytes.Buffer
	if err := web.RenderIndex(&buf, page); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
